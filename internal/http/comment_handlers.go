package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
)

type createCommentReq struct {
	Content  string `json:"content"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// CreateComment godoc
// @Summary Add a comment to a discussion
// @Tags comments
// @Accept json
// @Produce json
// @Param discussionID path string true "discussion id"
// @Param payload body createCommentReq true "content and author identity"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/create/{discussionID} [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var in createCommentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	comment, err := h.Interactions.AddComment(c.Request.Context(), c.Param("discussionID"), in.Content,
		domain.Identity{ID: in.ID, Email: in.Email, Name: in.Username})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "comment": comment})
}

type editCommentReq struct {
	Content string `json:"content"`
}

// EditComment godoc
// @Summary Edit a comment's content
// @Tags comments
// @Accept json
// @Produce json
// @Param discussionID path string true "discussion id"
// @Param commentID path string true "comment id"
// @Param payload body editCommentReq true "new content"
// @Success 200 {object} domain.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/edit/{discussionID}/{commentID} [put]
func (h *Handler) EditComment(c *gin.Context) {
	var in editCommentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	comment, err := h.Interactions.EditComment(c.Request.Context(), c.Param("discussionID"), c.Param("commentID"), in.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment updated successfully", "comment": comment})
}

// DeleteComment godoc
// @Summary Delete a comment (author only)
// @Tags comments
// @Accept json
// @Produce json
// @Param discussionID path string true "discussion id"
// @Param commentID path string true "comment id"
// @Param payload body emailReq true "requester email"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/delete/{discussionID}/{commentID} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Interactions.DeleteComment(c.Request.Context(), c.Param("discussionID"), c.Param("commentID"), in.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// LikeComment godoc
// @Summary Toggle a like on a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param discussionID path string true "discussion id"
// @Param commentID path string true "comment id"
// @Param payload body emailReq true "liker email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/like/{discussionID}/{commentID} [post]
func (h *Handler) LikeComment(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Interactions.ToggleCommentLike(c.Request.Context(), c.Param("discussionID"), c.Param("commentID"), in.Email)
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

// GetCommentLikes godoc
// @Summary List emails that liked a comment
// @Tags comments
// @Produce json
// @Param discussionID path string true "discussion id"
// @Param commentID path string true "comment id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/comments/likes/{discussionID}/{commentID} [get]
func (h *Handler) GetCommentLikes(c *gin.Context) {
	likes, err := h.Interactions.GetCommentLikes(c.Request.Context(), c.Param("discussionID"), c.Param("commentID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "like_count": len(likes)})
}

// GetComments godoc
// @Summary List a discussion's comments
// @Tags comments
// @Produce json
// @Param discussionID path string true "discussion id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/comments/list/{discussionID} [get]
func (h *Handler) GetComments(c *gin.Context) {
	comments, err := h.Interactions.GetDiscussionComments(c.Request.Context(), c.Param("discussionID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "comment_count": len(comments)})
}
