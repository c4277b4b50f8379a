package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/repo"
	"github.com/tazhibayda/community-service/internal/slugify"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type DiscussionService struct {
	discussions repo.DiscussionRepository
	groups      repo.GroupRepository
}

func NewDiscussionService(discussions repo.DiscussionRepository, groups repo.GroupRepository) *DiscussionService {
	return &DiscussionService{discussions: discussions, groups: groups}
}

// GroupSummary is the slice of group fields attached to discussion views
// in place of the raw group reference.
type GroupSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Slug        string             `json:"slug"`
	CreatedAt   time.Time          `json:"created_at"`
}

func summarize(g *domain.Group) *GroupSummary {
	if g == nil {
		return nil
	}
	return &GroupSummary{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		Slug:        g.Slug,
		CreatedAt:   g.CreatedAt,
	}
}

type DiscussionView struct {
	domain.Discussion
	Group *GroupSummary `json:"group,omitempty"`
}

type CreateDiscussionInput struct {
	Title    string
	Content  string
	Category string
	GroupID  string
	Poster   domain.Identity
}

// Create persists a discussion under the group. The slug is derived from
// the title with suffix retry, so a title collision alone never fails
// the operation.
func (s *DiscussionService) Create(ctx context.Context, in CreateDiscussionInput) (*domain.Discussion, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	poster := in.Poster.Normalize()
	if title == "" || content == "" || in.GroupID == "" || poster.Email == "" || poster.Name == "" {
		return nil, validation("all fields are required")
	}
	groupID, ok := parseID(in.GroupID)
	if !ok {
		return nil, notFound("group not found")
	}
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound("group not found")
	}

	// The probe loop and the unique index can still race; on a duplicate
	// insert re-derive and try again.
	for attempt := 0; attempt < 3; attempt++ {
		slug, err := slugify.MakeUnique(ctx, title, s.discussions.SlugExists)
		if err != nil {
			return nil, err
		}
		d := &domain.Discussion{
			Title:    title,
			Content:  content,
			Category: strings.TrimSpace(in.Category),
			Slug:     slug,
			Username: poster.Name,
			GroupID:  groupID,
			Likes:    []string{},
			Comments: []domain.Comment{},
		}
		err = s.discussions.Insert(ctx, d)
		if err == repo.ErrDuplicate {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.L().Info("discussion created",
			zap.String("discussion_id", d.ID.Hex()),
			zap.String("slug", d.Slug),
			zap.String("group_id", groupID.Hex()))
		return d, nil
	}
	return nil, conflict("could not allocate a unique slug for this title")
}

// Delete removes the discussion and, with it, every embedded comment.
// No ownership check on this surface (known gap preserved from the
// original; see DESIGN.md).
func (s *DiscussionService) Delete(ctx context.Context, discussionID string) error {
	id, ok := parseID(discussionID)
	if !ok {
		return notFound("discussion not found")
	}
	deleted, err := s.discussions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("discussion not found")
	}
	log.L().Info("discussion deleted", zap.String("discussion_id", id.Hex()))
	return nil
}

// List returns every discussion newest-first with its group expanded to
// summary fields.
func (s *DiscussionService) List(ctx context.Context) ([]DiscussionView, error) {
	ds, err := s.discussions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachGroups(ctx, ds)
}

// GetBySlug returns the discussion with its group summary and comments
// sorted newest-first.
func (s *DiscussionService) GetBySlug(ctx context.Context, slug string) (*DiscussionView, error) {
	d, err := s.discussions.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("discussion not found")
	}
	sort.SliceStable(d.Comments, func(i, j int) bool {
		return d.Comments[i].CreatedAt.After(d.Comments[j].CreatedAt)
	})
	g, err := s.groups.FindByID(ctx, d.GroupID)
	if err != nil {
		return nil, err
	}
	return &DiscussionView{Discussion: *d, Group: summarize(g)}, nil
}

// ListByGroup returns the group's discussions newest-first. A group with
// no discussions yields an empty slice, not an error.
func (s *DiscussionService) ListByGroup(ctx context.Context, groupID string) ([]DiscussionView, error) {
	id, ok := parseID(groupID)
	if !ok {
		return nil, validation("invalid group id")
	}
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound("group not found")
	}
	ds, err := s.discussions.FindByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(g)
	views := make([]DiscussionView, 0, len(ds))
	for _, d := range ds {
		views = append(views, DiscussionView{Discussion: d, Group: summary})
	}
	return views, nil
}

func (s *DiscussionService) attachGroups(ctx context.Context, ds []domain.Discussion) ([]DiscussionView, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ds))
	ids := make([]primitive.ObjectID, 0, len(ds))
	for _, d := range ds {
		if _, ok := seen[d.GroupID]; !ok {
			seen[d.GroupID] = struct{}{}
			ids = append(ids, d.GroupID)
		}
	}
	groups, err := s.groups.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]DiscussionView, 0, len(ds))
	for _, d := range ds {
		v := DiscussionView{Discussion: d}
		if g, ok := groups[d.GroupID]; ok {
			v.Group = summarize(&g)
		}
		views = append(views, v)
	}
	return views, nil
}
