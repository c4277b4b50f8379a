// Package testutil provides in-memory repository fakes that mirror the
// guard semantics of the Mongo implementation, so service and handler
// tests run without a database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repo.GroupRepository      = (*MemGroupRepo)(nil)
	_ repo.DiscussionRepository = (*MemDiscussionRepo)(nil)
)

type MemGroupRepo struct {
	mu     sync.Mutex
	groups map[primitive.ObjectID]domain.Group
}

func NewMemGroupRepo() *MemGroupRepo {
	return &MemGroupRepo{groups: make(map[primitive.ObjectID]domain.Group)}
}

func copyGroup(g domain.Group) domain.Group {
	out := g
	out.Members = append([]domain.Member(nil), g.Members...)
	return out
}

func (r *MemGroupRepo) Insert(_ context.Context, g *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.groups {
		if existing.Slug == g.Slug {
			return repo.ErrDuplicate
		}
	}
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Members == nil {
		g.Members = []domain.Member{}
	}
	r.groups[g.ID] = copyGroup(*g)
	return nil
}

func (r *MemGroupRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	out := copyGroup(g)
	return &out, nil
}

func (r *MemGroupRepo) FindBySlug(_ context.Context, slug string) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.Slug == slug {
			out := copyGroup(g)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemGroupRepo) FindByName(_ context.Context, name string) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.Name == name {
			out := copyGroup(g)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemGroupRepo) FindAll(_ context.Context) ([]domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, copyGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemGroupRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]domain.Group, len(ids))
	for _, id := range ids {
		if g, ok := r.groups[id]; ok {
			out[id] = copyGroup(g)
		}
	}
	return out, nil
}

func (r *MemGroupRepo) AddMember(_ context.Context, id primitive.ObjectID, m domain.Member) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return false, nil
	}
	for _, existing := range g.Members {
		if existing.Email == m.Email {
			return false, nil
		}
	}
	g.Members = append(append([]domain.Member(nil), g.Members...), m)
	r.groups[id] = g
	return true, nil
}

func (r *MemGroupRepo) RemoveMember(_ context.Context, id primitive.ObjectID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil
	}
	kept := g.Members[:0:0]
	for _, m := range g.Members {
		if m.Email != email {
			kept = append(kept, m)
		}
	}
	g.Members = kept
	r.groups[id] = g
	return nil
}

func (r *MemGroupRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[id]; !ok {
		return false, nil
	}
	delete(r.groups, id)
	return true, nil
}

type MemDiscussionRepo struct {
	mu          sync.Mutex
	discussions map[primitive.ObjectID]domain.Discussion
}

func NewMemDiscussionRepo() *MemDiscussionRepo {
	return &MemDiscussionRepo{discussions: make(map[primitive.ObjectID]domain.Discussion)}
}

func copyDiscussion(d domain.Discussion) domain.Discussion {
	out := d
	out.Likes = append([]string(nil), d.Likes...)
	out.Comments = make([]domain.Comment, len(d.Comments))
	for i, c := range d.Comments {
		c.Likes = append([]string(nil), c.Likes...)
		out.Comments[i] = c
	}
	return out
}

func (r *MemDiscussionRepo) Insert(_ context.Context, d *domain.Discussion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.discussions {
		if existing.Slug == d.Slug {
			return repo.ErrDuplicate
		}
	}
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
	r.discussions[d.ID] = copyDiscussion(*d)
	return nil
}

func (r *MemDiscussionRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return nil, nil
	}
	out := copyDiscussion(d)
	return &out, nil
}

func (r *MemDiscussionRepo) FindBySlug(_ context.Context, slug string) (*domain.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.discussions {
		if d.Slug == slug {
			out := copyDiscussion(d)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemDiscussionRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.discussions {
		if d.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemDiscussionRepo) FindAll(_ context.Context) ([]domain.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Discussion, 0, len(r.discussions))
	for _, d := range r.discussions {
		out = append(out, copyDiscussion(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemDiscussionRepo) FindByGroup(_ context.Context, groupID primitive.ObjectID) ([]domain.Discussion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Discussion{}
	for _, d := range r.discussions {
		if d.GroupID == groupID {
			out = append(out, copyDiscussion(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemDiscussionRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discussions[id]; !ok {
		return false, nil
	}
	delete(r.discussions, id)
	return true, nil
}

func (r *MemDiscussionRepo) DeleteByGroup(_ context.Context, groupID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.discussions {
		if d.GroupID == groupID {
			delete(r.discussions, id)
			n++
		}
	}
	return n, nil
}

func (r *MemDiscussionRepo) AddLike(_ context.Context, id primitive.ObjectID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return false, repo.ErrNotFound
	}
	for _, e := range d.Likes {
		if e == email {
			return false, nil
		}
	}
	d.Likes = append(append([]string(nil), d.Likes...), email)
	r.discussions[id] = d
	return true, nil
}

func (r *MemDiscussionRepo) RemoveLike(_ context.Context, id primitive.ObjectID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return false, repo.ErrNotFound
	}
	kept := d.Likes[:0:0]
	removed := false
	for _, e := range d.Likes {
		if e == email {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	d.Likes = kept
	r.discussions[id] = d
	return removed, nil
}

func (r *MemDiscussionRepo) AddComment(_ context.Context, id primitive.ObjectID, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return repo.ErrNotFound
	}
	d.Comments = append(append([]domain.Comment(nil), d.Comments...), c)
	r.discussions[id] = d
	return nil
}

func (r *MemDiscussionRepo) UpdateComment(_ context.Context, id primitive.ObjectID, commentID, content string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return repo.ErrNotFound
	}
	for i := range d.Comments {
		if d.Comments[i].ID == commentID {
			d.Comments[i].Content = content
			d.Comments[i].UpdatedAt = at
			r.discussions[id] = d
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *MemDiscussionRepo) RemoveComment(_ context.Context, id primitive.ObjectID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return repo.ErrNotFound
	}
	kept := d.Comments[:0:0]
	removed := false
	for _, c := range d.Comments {
		if c.ID == commentID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return repo.ErrNotFound
	}
	d.Comments = kept
	r.discussions[id] = d
	return nil
}

func (r *MemDiscussionRepo) AddCommentLike(_ context.Context, id primitive.ObjectID, commentID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return false, repo.ErrNotFound
	}
	for i := range d.Comments {
		if d.Comments[i].ID != commentID {
			continue
		}
		for _, e := range d.Comments[i].Likes {
			if e == email {
				return false, nil
			}
		}
		d.Comments[i].Likes = append(append([]string(nil), d.Comments[i].Likes...), email)
		r.discussions[id] = d
		return true, nil
	}
	return false, repo.ErrNotFound
}

func (r *MemDiscussionRepo) RemoveCommentLike(_ context.Context, id primitive.ObjectID, commentID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return false, repo.ErrNotFound
	}
	for i := range d.Comments {
		if d.Comments[i].ID != commentID {
			continue
		}
		kept := d.Comments[i].Likes[:0:0]
		removed := false
		for _, e := range d.Comments[i].Likes {
			if e == email {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		d.Comments[i].Likes = kept
		r.discussions[id] = d
		return removed, nil
	}
	return false, repo.ErrNotFound
}
