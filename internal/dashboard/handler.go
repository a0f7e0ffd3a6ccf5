package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/respond"
	"portfolio-backend/internal/users"
	"portfolio-backend/internal/visitors"
)

// Handler serves the staff dashboard aggregates. Routes must be registered
// behind the staff middleware.
type Handler struct {
	Users    *users.Service
	Visitors *visitors.Service
}

func NewHandler(userSvc *users.Service, visitorSvc *visitors.Service) *Handler {
	return &Handler{Users: userSvc, Visitors: visitorSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.stats)
}

func (h *Handler) stats(c *gin.Context) {
	if h.Users == nil || h.Visitors == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	ctx := c.Request.Context()

	userStats, err := h.Users.Stats(ctx)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user stats", nil)
		return
	}

	visitStats, err := h.Visitors.Stats(ctx)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load visit stats", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"users":  userStats,
		"visits": visitStats,
	})
}
