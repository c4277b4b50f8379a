// Package repo holds the repository contracts and their MongoDB
// implementation. Services depend on the interfaces only, so tests run
// against the in-memory fakes in internal/testutil.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/tazhibayda/community-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrDuplicate signals a unique-index violation (slug collision).
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound signals that a targeted update matched no document
	// (or no embedded comment).
	ErrNotFound = errors.New("not found")
)

type GroupRepository interface {
	Insert(ctx context.Context, g *domain.Group) error
	// FindByID returns (nil, nil) when the group does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Group, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Group, error)
	FindByName(ctx context.Context, name string) (*domain.Group, error)
	FindAll(ctx context.Context) ([]domain.Group, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Group, error)
	// AddMember appends m only if no existing member has the same email.
	// Returns false when the guard (or the group) did not match.
	AddMember(ctx context.Context, id primitive.ObjectID, m domain.Member) (bool, error)
	RemoveMember(ctx context.Context, id primitive.ObjectID, email string) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type DiscussionRepository interface {
	Insert(ctx context.Context, d *domain.Discussion) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Discussion, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Discussion, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindAll(ctx context.Context) ([]domain.Discussion, error)
	// FindByGroup returns the group's discussions newest-first.
	FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]domain.Discussion, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)

	// Like mutations are single conditional updates ($addToSet / $pull);
	// the added/removed result comes from the server, not a prior read.
	AddLike(ctx context.Context, id primitive.ObjectID, email string) (bool, error)
	RemoveLike(ctx context.Context, id primitive.ObjectID, email string) (bool, error)

	AddComment(ctx context.Context, id primitive.ObjectID, c domain.Comment) error
	// UpdateComment returns ErrNotFound when the discussion or the
	// embedded comment is gone.
	UpdateComment(ctx context.Context, id primitive.ObjectID, commentID, content string, at time.Time) error
	RemoveComment(ctx context.Context, id primitive.ObjectID, commentID string) error
	AddCommentLike(ctx context.Context, id primitive.ObjectID, commentID, email string) (bool, error)
	RemoveCommentLike(ctx context.Context, id primitive.ObjectID, commentID, email string) (bool, error)
}
