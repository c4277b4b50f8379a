package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/service"
	"github.com/tazhibayda/community-service/internal/testutil"
)

type interactionFixture struct {
	Svc        *service.InteractionService
	Discussion *domain.Discussion
}

func newInteractionFixture(t *testing.T) *interactionFixture {
	t.Helper()
	groups := testutil.NewMemGroupRepo()
	discussions := testutil.NewMemDiscussionRepo()
	gsvc := service.NewGroupService(groups, discussions)
	dsvc := service.NewDiscussionService(discussions, groups)
	ctx := context.Background()

	g, err := gsvc.Create(ctx, service.CreateGroupInput{
		Name: "Weekend Bikers", Description: "Rides", Category: "Sports", Creator: creator(),
	})
	require.NoError(t, err)

	d, err := dsvc.Create(ctx, service.CreateDiscussionInput{
		Title: "Helmet picks", Content: "what do you ride with?", Category: "Sports",
		GroupID: g.ID.Hex(),
		Poster:  domain.Identity{ID: "u2", Email: "bob@example.com", Name: "Bob"},
	})
	require.NoError(t, err)

	return &interactionFixture{Svc: service.NewInteractionService(discussions), Discussion: d}
}

func TestToggleDiscussionLike(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()
	id := f.Discussion.ID.Hex()

	res, err := f.Svc.ToggleDiscussionLike(ctx, id, "Carol@Example.com")
	require.NoError(t, err)
	require.True(t, res.Liked)
	require.Equal(t, []string{"carol@example.com"}, res.Likes)

	// same caller toggles back off
	res, err = f.Svc.ToggleDiscussionLike(ctx, id, "carol@example.com")
	require.NoError(t, err)
	require.False(t, res.Liked)
	require.Empty(t, res.Likes)

	likes, err := f.Svc.GetDiscussionLikes(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{}, likes)
}

func TestToggleDiscussionLike_Errors(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	_, err := f.Svc.ToggleDiscussionLike(ctx, f.Discussion.ID.Hex(), "  ")
	require.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = f.Svc.ToggleDiscussionLike(ctx, "64b0c10f9f1b2c3d4e5f6a7b", "c@e.com")
	require.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestCommentLifecycle(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()
	id := f.Discussion.ID.Hex()

	c, err := f.Svc.AddComment(ctx, id, "  nice ride  ",
		domain.Identity{ID: "u3", Email: "Carol@Example.com", Name: "Carol"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, "nice ride", c.Content)
	require.Equal(t, "carol@example.com", c.Email)
	require.Equal(t, "Carol", c.Username)
	require.True(t, c.UpdatedAt.IsZero())

	edited, err := f.Svc.EditComment(ctx, id, c.ID, "great ride")
	require.NoError(t, err)
	require.Equal(t, "great ride", edited.Content)
	require.False(t, edited.UpdatedAt.IsZero())

	comments, err := f.Svc.GetDiscussionComments(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "great ride", comments[0].Content)

	require.NoError(t, f.Svc.DeleteComment(ctx, id, c.ID, "carol@example.com"))

	comments, err = f.Svc.GetDiscussionComments(ctx, id)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestCommentAnonymousAuthor(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()

	c, err := f.Svc.AddComment(ctx, f.Discussion.ID.Hex(), "hi",
		domain.Identity{ID: "u9", Email: "ghost@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Anonymous", c.Username)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()
	id := f.Discussion.ID.Hex()

	c, err := f.Svc.AddComment(ctx, id, "mine",
		domain.Identity{ID: "u3", Email: "carol@example.com", Name: "Carol"})
	require.NoError(t, err)

	err = f.Svc.DeleteComment(ctx, id, c.ID, "mallory@example.com")
	require.Equal(t, service.KindForbidden, service.KindOf(err))
	require.EqualError(t, err, "not authorized to delete this comment")

	// the comment is untouched
	comments, err := f.Svc.GetDiscussionComments(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// author email comparison is case-insensitive
	require.NoError(t, f.Svc.DeleteComment(ctx, id, c.ID, "Carol@Example.com"))
}

func TestToggleCommentLike(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()
	id := f.Discussion.ID.Hex()

	c, err := f.Svc.AddComment(ctx, id, "like me",
		domain.Identity{ID: "u3", Email: "carol@example.com", Name: "Carol"})
	require.NoError(t, err)

	res, err := f.Svc.ToggleCommentLike(ctx, id, c.ID, "bob@example.com")
	require.NoError(t, err)
	require.True(t, res.Liked)
	require.Equal(t, []string{"bob@example.com"}, res.Likes)

	likes, err := f.Svc.GetCommentLikes(ctx, id, c.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"bob@example.com"}, likes)

	res, err = f.Svc.ToggleCommentLike(ctx, id, c.ID, "bob@example.com")
	require.NoError(t, err)
	require.False(t, res.Liked)
	require.Empty(t, res.Likes)
}

func TestCommentNotFound(t *testing.T) {
	f := newInteractionFixture(t)
	ctx := context.Background()
	id := f.Discussion.ID.Hex()

	_, err := f.Svc.EditComment(ctx, id, "missing", "new text")
	require.Equal(t, service.KindNotFound, service.KindOf(err))

	err = f.Svc.DeleteComment(ctx, id, "missing", "x@e.com")
	require.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = f.Svc.ToggleCommentLike(ctx, id, "missing", "x@e.com")
	require.Equal(t, service.KindNotFound, service.KindOf(err))
}
