package service

import (
	"context"
	"strings"

	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/repo"
	"github.com/tazhibayda/community-service/internal/slugify"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type GroupService struct {
	groups      repo.GroupRepository
	discussions repo.DiscussionRepository
}

func NewGroupService(groups repo.GroupRepository, discussions repo.DiscussionRepository) *GroupService {
	return &GroupService{groups: groups, discussions: discussions}
}

// parseID converts a hex id from the URL into an ObjectID. Malformed ids
// are folded into not-found by most callers: such an entity cannot exist.
func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	return id, err == nil
}

type CreateGroupInput struct {
	Name        string
	Description string
	Category    string
	Creator     domain.Identity
}

// Create makes a group with the creator as its first member. The slug is
// derived from the name once and never recomputed.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (*domain.Group, error) {
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if name == "" || desc == "" || category == "" {
		return nil, validation("name, description and category are required")
	}
	if !domain.ValidCategory(category) {
		return nil, validation("unknown category")
	}
	creator := in.Creator.Normalize()
	if creator.ID == "" || creator.Email == "" {
		return nil, validation("creator id and email are required")
	}

	// Advisory pre-check; the unique slug index is the backstop.
	existing, err := s.groups.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("group with this name already exists")
	}

	member := creator.Member()
	g := &domain.Group{
		Name:        name,
		Description: desc,
		Category:    category,
		Slug:        slugify.Make(name),
		Creator:     member,
		Members:     []domain.Member{member},
	}
	if err := s.groups.Insert(ctx, g); err != nil {
		if err == repo.ErrDuplicate {
			return nil, conflict("group with this name already exists")
		}
		return nil, err
	}
	log.L().Info("group created",
		zap.String("group_id", g.ID.Hex()), zap.String("slug", g.Slug))
	return g, nil
}

// Join appends the identity to the member list. The repository guard
// refuses the push when the email is already present, so concurrent
// joins cannot produce duplicates.
func (s *GroupService) Join(ctx context.Context, groupID string, ident domain.Identity) (*domain.Group, error) {
	ident = ident.Normalize()
	if ident.ID == "" || ident.Email == "" {
		return nil, validation("id and email are required to join the group")
	}
	id, ok := parseID(groupID)
	if !ok {
		return nil, notFound("group not found")
	}
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound("group not found")
	}
	if g.HasMember(ident.Email) {
		return nil, conflict("user is already a member of this group")
	}

	added, err := s.groups.AddMember(ctx, id, ident.Member())
	if err != nil {
		return nil, err
	}
	if !added {
		// Lost the race against another join with the same email.
		return nil, conflict("user is already a member of this group")
	}

	g, err = s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound("group not found")
	}
	return g, nil
}

// Leave removes every member entry with the email. The creator cannot
// leave; leaving a group you never joined is a no-op.
func (s *GroupService) Leave(ctx context.Context, groupID, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return validation("email is required")
	}
	id, ok := parseID(groupID)
	if !ok {
		return notFound("group not found")
	}
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound("group not found")
	}
	if g.IsCreator(email) {
		return validation("group creator cannot leave the group")
	}
	return s.groups.RemoveMember(ctx, id, email)
}

func (s *GroupService) IsMember(ctx context.Context, groupID, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, validation("missing groupId or email")
	}
	id, ok := parseID(groupID)
	if !ok {
		return false, notFound("group not found")
	}
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if g == nil {
		return false, notFound("group not found")
	}
	return g.HasMember(email), nil
}

// Delete removes the group and every discussion referencing it. The two
// deletes are separate operations with no transaction boundary; the
// discussions go first so a failure in between cannot leave discussions
// pointing at a live group.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	id, ok := parseID(groupID)
	if !ok {
		return notFound("group not found")
	}
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound("group not found")
	}

	n, err := s.discussions.DeleteByGroup(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	log.L().Info("group deleted",
		zap.String("group_id", id.Hex()), zap.Int64("discussions_removed", n))
	return nil
}

func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.groups.FindAll(ctx)
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	g, err := s.groups.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, notFound("group not found")
	}
	return g, nil
}
