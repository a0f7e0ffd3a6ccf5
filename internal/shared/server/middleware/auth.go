package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/server/respond"
)

const (
	userIDKey     = "userId"
	userEmailKey  = "userEmail"
	userNameKey   = "userName"
	userStaffKey  = "userStaff"
	sessionIDKey  = "sessionId"
	sessionCookie = "portfolio_session"
	sessionMaxAge = 7 * 24 * 3600
)

// Auth resolves the bearer token, if any, and stores identity in context.
// It never rejects on its own; protected routes add RequireUser.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		claims, err := auth.VerifyToken(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Set(userStaffKey, claims.Staff)
		c.Next()
	}
}

// RequireUser rejects requests that carry no authenticated identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Login required", nil)
			return
		}
		c.Next()
	}
}

// RequireStaff rejects requests from non-staff identities.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Login required", nil)
			return
		}
		if !IsStaffFromContext(c) {
			respond.Error(c, http.StatusForbidden, "forbidden", "Staff access required", nil)
			return
		}
		c.Next()
	}
}

// Session ensures every request carries an opaque wizard-session identifier,
// minted lazily and echoed back as a cookie.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || strings.TrimSpace(id) == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// UserEmailFromContext fetches the user email stored by Auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// IsStaffFromContext reports whether the authenticated user is staff.
func IsStaffFromContext(c *gin.Context) bool {
	return c.GetBool(userStaffKey)
}

// SessionIDFromContext fetches the wizard-session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
