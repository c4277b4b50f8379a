package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog())
	r.Use(Metrics())

	rate := h.RateLimitPerMin
	if rate <= 0 {
		rate = 30
	}
	rl := NewRateLimiter(rate, time.Minute)
	limited := RateLimitWrites(h.Redis, rl)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	groups := r.Group("/api/groups")
	{
		groups.POST("/createGroup", h.CreateGroup)
		groups.GET("/getAllGroups", h.GetAllGroups)
		groups.GET("/getGroupBySlug/:slug", h.GetGroupBySlug)
		groups.GET("/getDiscussionsByGroup/:groupID", h.GetDiscussionsByGroup)
		groups.POST("/join/:groupID", h.JoinGroup)
		groups.POST("/leave/:groupID", h.LeaveGroup)
		groups.POST("/members/:groupID", h.CheckMembership)
		groups.DELETE("/deleteGroup/:groupID", h.DeleteGroup)
	}

	discussions := r.Group("/api/discussions")
	{
		discussions.POST("/createDiscussion", limited, h.CreateDiscussion)
		discussions.GET("/getAllDiscussions", h.GetAllDiscussions)
		discussions.GET("/getDiscussionBySlug/:slug", h.GetDiscussionBySlug)
		discussions.POST("/likeDiscussion", h.LikeDiscussion)
		discussions.GET("/getLikes/:discussionID", h.GetDiscussionLikes)
		discussions.DELETE("/deleteDiscussion/:discussionID", h.DeleteDiscussion)
	}

	comments := r.Group("/api/comments")
	{
		comments.POST("/create/:discussionID", limited, h.CreateComment)
		comments.GET("/list/:discussionID", h.GetComments)
		comments.PUT("/edit/:discussionID/:commentID", h.EditComment)
		comments.DELETE("/delete/:discussionID/:commentID", h.DeleteComment)
		comments.POST("/like/:discussionID/:commentID", h.LikeComment)
		comments.GET("/likes/:discussionID/:commentID", h.GetCommentLikes)
	}

	return r
}
