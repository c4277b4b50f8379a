package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/service"
	"github.com/tazhibayda/community-service/internal/testutil"
)

type discussionFixture struct {
	Groups      *testutil.MemGroupRepo
	Discussions *testutil.MemDiscussionRepo
	GroupSvc    *service.GroupService
	Svc         *service.DiscussionService
	Group       *domain.Group
}

func newDiscussionFixture(t *testing.T) *discussionFixture {
	t.Helper()
	groups := testutil.NewMemGroupRepo()
	discussions := testutil.NewMemDiscussionRepo()
	gsvc := service.NewGroupService(groups, discussions)
	dsvc := service.NewDiscussionService(discussions, groups)

	g, err := gsvc.Create(context.Background(), service.CreateGroupInput{
		Name: "Weekend Bikers", Description: "Rides", Category: "Sports", Creator: creator(),
	})
	require.NoError(t, err)

	return &discussionFixture{
		Groups: groups, Discussions: discussions,
		GroupSvc: gsvc, Svc: dsvc, Group: g,
	}
}

func TestDiscussionCreate(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	d, err := f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "Hello World", Content: "first post", Category: "Sports",
		GroupID: f.Group.ID.Hex(),
		Poster:  domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"},
	})
	require.NoError(t, err)
	require.Equal(t, "hello-world", d.Slug)
	require.Equal(t, "Bob", d.Username)
	require.Equal(t, f.Group.ID, d.GroupID)
	require.NotNil(t, d.Likes)
	require.NotNil(t, d.Comments)
}

func TestDiscussionCreate_SlugSuffixRetry(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	in := service.CreateDiscussionInput{
		Title: "Hello World", Content: "post", Category: "Sports",
		GroupID: f.Group.ID.Hex(),
		Poster:  domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"},
	}
	slugs := []string{"hello-world", "hello-world-1", "hello-world-2"}
	for _, want := range slugs {
		d, err := f.Svc.Create(ctx, in)
		require.NoError(t, err)
		require.Equal(t, want, d.Slug)
	}
}

func TestDiscussionCreate_Validation(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	_, err := f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "No content", GroupID: f.Group.ID.Hex(),
		Poster: domain.Identity{Email: "bob@example.com", Name: "Bob"},
	})
	require.Equal(t, service.KindValidation, service.KindOf(err))
	require.EqualError(t, err, "all fields are required")

	_, err = f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "Orphan", Content: "x", GroupID: "64b0c10f9f1b2c3d4e5f6a7b",
		Poster: domain.Identity{Email: "bob@example.com", Name: "Bob"},
	})
	require.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestDiscussionGetBySlug_CommentsNewestFirst(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	d, err := f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "Route for Saturday", Content: "ideas?", Category: "Sports",
		GroupID: f.Group.ID.Hex(),
		Poster:  domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"},
	})
	require.NoError(t, err)

	base := time.Now().UTC()
	for i, text := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, f.Discussions.AddComment(ctx, d.ID, domain.Comment{
			ID: text, Content: text, Email: "bob@example.com", Username: "Bob",
			Likes: []string{}, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	view, err := f.Svc.GetBySlug(ctx, d.Slug)
	require.NoError(t, err)
	require.NotNil(t, view.Group)
	require.Equal(t, f.Group.Slug, view.Group.Slug)
	require.Len(t, view.Comments, 3)
	require.Equal(t, "newest", view.Comments[0].Content)
	require.Equal(t, "oldest", view.Comments[2].Content)
}

func TestDiscussionListByGroup(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	// malformed id is a validation error on this surface
	_, err := f.Svc.ListByGroup(ctx, "not-an-id")
	require.Equal(t, service.KindValidation, service.KindOf(err))
	require.EqualError(t, err, "invalid group id")

	_, err = f.Svc.ListByGroup(ctx, "64b0c10f9f1b2c3d4e5f6a7b")
	require.Equal(t, service.KindNotFound, service.KindOf(err))

	views, err := f.Svc.ListByGroup(ctx, f.Group.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, views)

	poster := domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"}
	first, err := f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "First", Content: "x", GroupID: f.Group.ID.Hex(), Poster: poster,
	})
	require.NoError(t, err)
	// later insert sorts first
	require.NoError(t, f.Discussions.Insert(ctx, &domain.Discussion{
		Title: "Second", Content: "y", Slug: "second", Username: "Bob",
		GroupID: f.Group.ID, CreatedAt: first.CreatedAt.Add(time.Minute),
	}))

	views, err = f.Svc.ListByGroup(ctx, f.Group.ID.Hex())
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "Second", views[0].Title)
	require.Equal(t, "First", views[1].Title)
	require.NotNil(t, views[0].Group)
}

func TestDiscussionDelete(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	d, err := f.Svc.Create(ctx, service.CreateDiscussionInput{
		Title: "Short lived", Content: "x", GroupID: f.Group.ID.Hex(),
		Poster: domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"},
	})
	require.NoError(t, err)

	require.NoError(t, f.Svc.Delete(ctx, d.ID.Hex()))

	err = f.Svc.Delete(ctx, d.ID.Hex())
	require.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = f.Svc.GetBySlug(ctx, "short-lived")
	require.Equal(t, service.KindNotFound, service.KindOf(err))
}
