package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/repo"
	"github.com/tazhibayda/community-service/internal/service"
	"go.uber.org/zap"
)

// Pinger is what Healthz needs from the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Groups          *service.GroupService
	Discussions     *service.DiscussionService
	Interactions    *service.InteractionService
	Store           Pinger
	Redis           *repo.Redis
	RateLimitPerMin int
}

func NewHandler(
	groups *service.GroupService,
	discussions *service.DiscussionService,
	interactions *service.InteractionService,
	store Pinger,
	rds *repo.Redis,
	rlPerMin int,
) *Handler {
	return &Handler{
		Groups:          groups,
		Discussions:     discussions,
		Interactions:    interactions,
		Store:           store,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
	}
}

// identityPayload is the caller identity as carried in request bodies.
// There is no token behind it; it is trusted as-is.
type identityPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (p identityPayload) identity() domain.Identity {
	return domain.Identity{ID: p.ID, Email: p.Email, Name: p.Name, Role: domain.Role(p.Role)}
}

// respondErr maps the service taxonomy onto HTTP statuses. Unclassified
// errors are logged and come back as a plain 500 with no detail leaked.
func respondErr(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Healthz godoc
// @Summary Service health
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		if err := h.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
