package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/service"
)

type createGroupReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Creator     identityPayload `json:"creator"`
}

// CreateGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param payload body createGroupReq true "name, description, category, creator identity"
// @Success 201 {object} domain.Group
// @Failure 400 {object} map[string]string
// @Router /api/groups/createGroup [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var in createGroupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Groups.Create(c.Request.Context(), service.CreateGroupInput{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Creator:     in.Creator.identity(),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// JoinGroup godoc
// @Summary Join a group
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "group id"
// @Param payload body identityPayload true "joiner identity"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/groups/join/{groupID} [post]
func (h *Handler) JoinGroup(c *gin.Context) {
	var in identityPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Groups.Join(c.Request.Context(), c.Param("groupID"), in.identity())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined group successfully", "group": g})
}

type emailReq struct {
	Email string `json:"email"`
}

// LeaveGroup godoc
// @Summary Leave a group
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "group id"
// @Param payload body emailReq true "member email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/groups/leave/{groupID} [post]
func (h *Handler) LeaveGroup(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Groups.Leave(c.Request.Context(), c.Param("groupID"), in.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left group successfully"})
}

// CheckMembership godoc
// @Summary Check whether an email belongs to a group member
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "group id"
// @Param payload body emailReq true "email to check"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/groups/members/{groupID} [post]
func (h *Handler) CheckMembership(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	isMember, err := h.Groups.IsMember(c.Request.Context(), c.Param("groupID"), in.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_member": isMember})
}

// DeleteGroup godoc
// @Summary Delete a group and its discussions
// @Tags groups
// @Produce json
// @Param groupID path string true "group id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/groups/deleteGroup/{groupID} [delete]
func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.Groups.Delete(c.Request.Context(), c.Param("groupID")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group and associated discussions deleted successfully"})
}

// groupSummaryResp is the projection used by the group list.
type groupSummaryResp struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Slug        string          `json:"slug"`
	Members     []domain.Member `json:"members"`
}

// GetAllGroups godoc
// @Summary List all groups
// @Tags groups
// @Produce json
// @Success 200 {array} groupSummaryResp
// @Router /api/groups/getAllGroups [get]
func (h *Handler) GetAllGroups(c *gin.Context) {
	groups, err := h.Groups.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]groupSummaryResp, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupSummaryResp{
			ID:          g.ID.Hex(),
			Name:        g.Name,
			Description: g.Description,
			Category:    g.Category,
			Slug:        g.Slug,
			Members:     g.Members,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetGroupBySlug godoc
// @Summary Get a group by slug
// @Tags groups
// @Produce json
// @Param slug path string true "group slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/groups/getGroupBySlug/{slug} [get]
func (h *Handler) GetGroupBySlug(c *gin.Context) {
	g, err := h.Groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           g.ID,
		"name":         g.Name,
		"description":  g.Description,
		"category":     g.Category,
		"slug":         g.Slug,
		"creator":      g.Creator,
		"members":      g.Members,
		"member_count": len(g.Members),
		"created_at":   g.CreatedAt,
	})
}

// GetDiscussionsByGroup godoc
// @Summary List a group's discussions, newest first
// @Tags groups
// @Produce json
// @Param groupID path string true "group id"
// @Success 200 {array} service.DiscussionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/groups/getDiscussionsByGroup/{groupID} [get]
func (h *Handler) GetDiscussionsByGroup(c *gin.Context) {
	views, err := h.Discussions.ListByGroup(c.Request.Context(), c.Param("groupID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
