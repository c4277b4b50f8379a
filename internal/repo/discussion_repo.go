package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/community-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DiscussionRepo is the Mongo-backed DiscussionRepository. Comments and
// likes are embedded in the discussion document; every mutation below is
// a single conditional update so concurrent writers cannot lose updates.
type DiscussionRepo struct {
	c *mongo.Collection
}

func (r *DiscussionRepo) Insert(ctx context.Context, d *domain.Discussion) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Likes == nil {
		d.Likes = []string{}
	}
	if d.Comments == nil {
		d.Comments = []domain.Comment{}
	}
	_, err := r.c.InsertOne(ctx, d)
	if IsDup(err) {
		return ErrDuplicate
	}
	return err
}

func (r *DiscussionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Discussion, error) {
	var d domain.Discussion
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &d, err
}

func (r *DiscussionRepo) FindBySlug(ctx context.Context, slug string) (*domain.Discussion, error) {
	var d domain.Discussion
	err := r.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &d, err
}

func (r *DiscussionRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *DiscussionRepo) FindAll(ctx context.Context) ([]domain.Discussion, error) {
	return r.find(ctx, bson.M{})
}

func (r *DiscussionRepo) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]domain.Discussion, error) {
	return r.find(ctx, bson.M{"group": groupID})
}

func (r *DiscussionRepo) find(ctx context.Context, filter bson.M) ([]domain.Discussion, error) {
	cur, err := r.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Discussion
	for cur.Next(ctx) {
		var d domain.Discussion
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (r *DiscussionRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// DeleteByGroup removes every discussion referencing the group; used by
// the group-delete cascade.
func (r *DiscussionRepo) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"group": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddLike adds email to the like set. Returns false when it was already
// present ($addToSet matched but modified nothing).
func (r *DiscussionRepo) AddLike(ctx context.Context, id primitive.ObjectID, email string) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"likes": email}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}

func (r *DiscussionRepo) RemoveLike(ctx context.Context, id primitive.ObjectID, email string) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"likes": email}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}

func (r *DiscussionRepo) AddComment(ctx context.Context, id primitive.ObjectID, c domain.Comment) error {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": c}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiscussionRepo) UpdateComment(ctx context.Context, id primitive.ObjectID, commentID, content string, at time.Time) error {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "comments.id": commentID},
		bson.M{"$set": bson.M{
			"comments.$.content":    content,
			"comments.$.updated_at": at,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiscussionRepo) RemoveComment(ctx context.Context, id primitive.ObjectID, commentID string) error {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiscussionRepo) AddCommentLike(ctx context.Context, id primitive.ObjectID, commentID, email string) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "comments.id": commentID},
		bson.M{"$addToSet": bson.M{"comments.$.likes": email}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}

func (r *DiscussionRepo) RemoveCommentLike(ctx context.Context, id primitive.ObjectID, commentID, email string) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "comments.id": commentID},
		bson.M{"$pull": bson.M{"comments.$.likes": email}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount == 1, nil
}
