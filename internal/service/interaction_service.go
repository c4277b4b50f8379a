package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionService covers likes and comments on discussions. Like sets
// are mutated with atomic add/remove operators; whether a toggle liked or
// unliked comes from the store's answer, not from a prior read.
type InteractionService struct {
	discussions repo.DiscussionRepository
}

func NewInteractionService(discussions repo.DiscussionRepository) *InteractionService {
	return &InteractionService{discussions: discussions}
}

type LikeResult struct {
	Liked bool     // true when this call added the like
	Likes []string // resulting like set
}

func (s *InteractionService) ToggleDiscussionLike(ctx context.Context, discussionID, email string) (*LikeResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, validation("email is required")
	}
	id, ok := parseID(discussionID)
	if !ok {
		return nil, notFound("discussion not found")
	}

	added, err := s.discussions.AddLike(ctx, id, email)
	if err == repo.ErrNotFound {
		return nil, notFound("discussion not found")
	}
	if err != nil {
		return nil, err
	}
	if !added {
		if _, err := s.discussions.RemoveLike(ctx, id, email); err != nil {
			if err == repo.ErrNotFound {
				return nil, notFound("discussion not found")
			}
			return nil, err
		}
	}

	d, err := s.discussions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("discussion not found")
	}
	return &LikeResult{Liked: added, Likes: likesOrEmpty(d.Likes)}, nil
}

func (s *InteractionService) AddComment(ctx context.Context, discussionID, content string, ident domain.Identity) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	ident = ident.Normalize()
	if content == "" {
		return nil, validation("content is required")
	}
	if ident.Email == "" {
		return nil, validation("email is required")
	}
	id, ok := parseID(discussionID)
	if !ok {
		return nil, notFound("discussion not found")
	}

	c := domain.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		Email:     ident.Email,
		Username:  ident.Member().Name,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.discussions.AddComment(ctx, id, c); err != nil {
		if err == repo.ErrNotFound {
			return nil, notFound("discussion not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *InteractionService) EditComment(ctx context.Context, discussionID, commentID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validation("content is required")
	}
	id, c, err := s.findComment(ctx, discussionID, commentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.discussions.UpdateComment(ctx, id, c.ID, content, now); err != nil {
		if err == repo.ErrNotFound {
			return nil, notFound("comment not found")
		}
		return nil, err
	}
	c.Content = content
	c.UpdatedAt = now
	return c, nil
}

// DeleteComment removes the comment if the requester is its author.
func (s *InteractionService) DeleteComment(ctx context.Context, discussionID, commentID, requesterEmail string) error {
	id, c, err := s.findComment(ctx, discussionID, commentID)
	if err != nil {
		return err
	}
	if c.Email != domain.NormalizeEmail(requesterEmail) {
		return forbidden("not authorized to delete this comment")
	}
	if err := s.discussions.RemoveComment(ctx, id, c.ID); err != nil {
		if err == repo.ErrNotFound {
			return notFound("comment not found")
		}
		return err
	}
	return nil
}

func (s *InteractionService) ToggleCommentLike(ctx context.Context, discussionID, commentID, email string) (*LikeResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, validation("email is required")
	}
	id, c, err := s.findComment(ctx, discussionID, commentID)
	if err != nil {
		return nil, err
	}

	added, err := s.discussions.AddCommentLike(ctx, id, c.ID, email)
	if err == repo.ErrNotFound {
		return nil, notFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	if !added {
		if _, err := s.discussions.RemoveCommentLike(ctx, id, c.ID, email); err != nil {
			if err == repo.ErrNotFound {
				return nil, notFound("comment not found")
			}
			return nil, err
		}
	}

	_, c, err = s.findComment(ctx, discussionID, commentID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: added, Likes: likesOrEmpty(c.Likes)}, nil
}

func (s *InteractionService) GetCommentLikes(ctx context.Context, discussionID, commentID string) ([]string, error) {
	_, c, err := s.findComment(ctx, discussionID, commentID)
	if err != nil {
		return nil, err
	}
	return likesOrEmpty(c.Likes), nil
}

func (s *InteractionService) GetDiscussionLikes(ctx context.Context, discussionID string) ([]string, error) {
	d, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	return likesOrEmpty(d.Likes), nil
}

func (s *InteractionService) GetDiscussionComments(ctx context.Context, discussionID string) ([]domain.Comment, error) {
	d, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if d.Comments == nil {
		return []domain.Comment{}, nil
	}
	return d.Comments, nil
}

func (s *InteractionService) findDiscussion(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	id, ok := parseID(discussionID)
	if !ok {
		return nil, notFound("discussion not found")
	}
	d, err := s.discussions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("discussion not found")
	}
	return d, nil
}

func (s *InteractionService) findComment(ctx context.Context, discussionID, commentID string) (primitive.ObjectID, *domain.Comment, error) {
	d, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	c := d.Comment(strings.TrimSpace(commentID))
	if c == nil {
		return primitive.NilObjectID, nil, notFound("comment not found")
	}
	return d.ID, c, nil
}

func likesOrEmpty(likes []string) []string {
	if likes == nil {
		return []string{}
	}
	return likes
}
