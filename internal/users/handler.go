package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me/api-key", h.setAPIKey)
	rg.DELETE("/me/api-key", h.clearAPIKey)
}

func (h *Handler) me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":                    user.ID,
		"email":                 user.Email,
		"fullName":              user.FullName,
		"pictureUrl":            user.PictureURL,
		"hasGeneratedPortfolio": user.HasGeneratedPortfolio,
		"geminiApiKey":          maskAPIKey(user.GeminiAPIKey),
	})
}

type setAPIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

func (h *Handler) setAPIKey(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req setAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "apiKey is required", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.SetAPIKey(c.Request.Context(), userID, req.APIKey); err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save api key", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"geminiApiKey": maskAPIKey(req.APIKey)})
}

func (h *Handler) clearAPIKey(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.ClearAPIKey(c.Request.Context(), userID); err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear api key", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"geminiApiKey": ""})
}

func (h *Handler) currentUser(c *gin.Context) (User, bool) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return User{}, false
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return User{}, false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return User{}, false
	}
	return user, true
}

// maskAPIKey keeps only a short preview of a stored key. Full values never
// leave the server.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
