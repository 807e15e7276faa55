package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/pkg/cookie"
	"salon-assist/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxStaffIDKey   = "staff_id"
	ctxStaffRoleKey = "staff_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		staffID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxStaffIDKey, staffID)
		c.Set(ctxStaffRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"staff_id": staffID.String(),
			"role":     string(role),
		})
		c.Next()
	}
}

// RequireRole gates a route to exactly one role. Finer-grained checks
// stay in the usecase layer, keyed off the acting staff member.
func (m *AuthMiddleware) RequireRole(role staff.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if actor.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetStaffID(c *gin.Context) (uuid.UUID, bool) {
	staffID, exists := c.Get(ctxStaffIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := staffID.(uuid.UUID)
	return id, ok
}

func GetStaffRole(c *gin.Context) (staff.Role, bool) {
	staffRole, exists := c.Get(ctxStaffRoleKey)
	if !exists {
		return "", false
	}

	role, ok := staffRole.(staff.Role)
	return role, ok
}

// GetActor assembles the acting staff member the usecase layer keys its
// permission checks off.
func GetActor(c *gin.Context) (staff.Actor, bool) {
	id, ok := GetStaffID(c)
	if !ok {
		return staff.Actor{}, false
	}
	role, ok := GetStaffRole(c)
	if !ok {
		return staff.Actor{}, false
	}
	return staff.Actor{ID: id, Role: role}, true
}
