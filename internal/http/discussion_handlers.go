package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/service"
)

type createDiscussionReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	GroupID  string `json:"group_id"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// CreateDiscussion godoc
// @Summary Create a discussion in a group
// @Tags discussions
// @Accept json
// @Produce json
// @Param payload body createDiscussionReq true "title, content, category, group_id, poster identity"
// @Success 201 {object} domain.Discussion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/discussions/createDiscussion [post]
func (h *Handler) CreateDiscussion(c *gin.Context) {
	var in createDiscussionReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := h.Discussions.Create(c.Request.Context(), service.CreateDiscussionInput{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		GroupID:  in.GroupID,
		Poster:   domain.Identity{ID: in.ID, Email: in.Email, Name: in.Username},
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Discussion created successfully", "discussion": d})
}

// DeleteDiscussion godoc
// @Summary Delete a discussion
// @Tags discussions
// @Produce json
// @Param discussionID path string true "discussion id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/discussions/deleteDiscussion/{discussionID} [delete]
func (h *Handler) DeleteDiscussion(c *gin.Context) {
	if err := h.Discussions.Delete(c.Request.Context(), c.Param("discussionID")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion deleted successfully"})
}

// GetAllDiscussions godoc
// @Summary List all discussions, newest first
// @Tags discussions
// @Produce json
// @Success 200 {array} service.DiscussionView
// @Router /api/discussions/getAllDiscussions [get]
func (h *Handler) GetAllDiscussions(c *gin.Context) {
	views, err := h.Discussions.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetDiscussionBySlug godoc
// @Summary Get a discussion by slug
// @Tags discussions
// @Produce json
// @Param slug path string true "discussion slug"
// @Success 200 {object} service.DiscussionView
// @Failure 404 {object} map[string]string
// @Router /api/discussions/getDiscussionBySlug/{slug} [get]
func (h *Handler) GetDiscussionBySlug(c *gin.Context) {
	view, err := h.Discussions.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type likeDiscussionReq struct {
	DiscussionID string `json:"discussion_id"`
	Email        string `json:"email"`
}

// LikeDiscussion godoc
// @Summary Toggle a like on a discussion
// @Tags discussions
// @Accept json
// @Produce json
// @Param payload body likeDiscussionReq true "discussion id and liker email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/discussions/likeDiscussion [post]
func (h *Handler) LikeDiscussion(c *gin.Context) {
	var in likeDiscussionReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Interactions.ToggleDiscussionLike(c.Request.Context(), in.DiscussionID, in.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	msg := "Unliked"
	if res.Liked {
		msg = "Liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "likes": res.Likes})
}

// GetDiscussionLikes godoc
// @Summary List emails that liked a discussion
// @Tags discussions
// @Produce json
// @Param discussionID path string true "discussion id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/discussions/getLikes/{discussionID} [get]
func (h *Handler) GetDiscussionLikes(c *gin.Context) {
	likes, err := h.Interactions.GetDiscussionLikes(c.Request.Context(), c.Param("discussionID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "like_count": len(likes)})
}
