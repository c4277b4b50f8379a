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

// GroupRepo is the Mongo-backed GroupRepository.
type GroupRepo struct {
	c *mongo.Collection
}

func (r *GroupRepo) Insert(ctx context.Context, g *domain.Group) error {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Members == nil {
		g.Members = []domain.Member{}
	}
	_, err := r.c.InsertOne(ctx, g)
	if IsDup(err) {
		return ErrDuplicate
	}
	return err
}

func (r *GroupRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Group, error) {
	var g domain.Group
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

func (r *GroupRepo) FindBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	var g domain.Group
	err := r.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

func (r *GroupRepo) FindByName(ctx context.Context, name string) (*domain.Group, error) {
	var g domain.Group
	err := r.c.FindOne(ctx, bson.M{"name": name}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

func (r *GroupRepo) FindAll(ctx context.Context) ([]domain.Group, error) {
	cur, err := r.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Group
	for cur.Next(ctx) {
		var g domain.Group
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (r *GroupRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Group, error) {
	out := make(map[primitive.ObjectID]domain.Group, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var g domain.Group
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out[g.ID] = g
	}
	return out, cur.Err()
}

// AddMember pushes m onto the member list in one conditional update: the
// filter excludes groups that already hold a member with the same email,
// so two concurrent joins cannot both land.
func (r *GroupRepo) AddMember(ctx context.Context, id primitive.ObjectID, m domain.Member) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "members.email": bson.M{"$ne": m.Email}},
		bson.M{"$push": bson.M{"members": m}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RemoveMember pulls every member entry carrying the email. Removing an
// email that was never a member is a no-op, not an error.
func (r *GroupRepo) RemoveMember(ctx context.Context, id primitive.ObjectID, email string) error {
	_, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"members": bson.M{"email": email}}},
	)
	return err
}

func (r *GroupRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
