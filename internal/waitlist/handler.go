package waitlist

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/shared/server/respond"
)

type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/waitlist", h.join)
}

type joinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

func (h *Handler) join(c *gin.Context) {
	if h.Repo == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and fullName are required", nil)
		return
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:  strings.TrimSpace(req.FullName),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Repo.Insert(c.Request.Context(), entry); err != nil {
		if errors.Is(err, ErrDuplicate) {
			respond.Error(c, http.StatusConflict, "already_joined", "this email is already on the waitlist", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to join waitlist", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"status": "joined"})
}
