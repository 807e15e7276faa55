package api

import (
	"errors"
	"net/http"

	reqdto "salon-assist/internal/handler/dto/request"
	resdto "salon-assist/internal/handler/dto/response"
	"salon-assist/internal/handler/middleware"
	"salon-assist/internal/pkg/config"
	"salon-assist/internal/pkg/cookie"
	"salon-assist/internal/pkg/jwt"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	staffQueries queries.StaffQueries
	jwtService   *jwt.Service
	cookieCfg    config.CookieConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, staffQueries queries.StaffQueries, jwtService *jwt.Service, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		staffQueries: staffQueries,
		jwtService:   jwtService,
		cookieCfg:    cookieCfg,
	}
}

// @Summary Staff login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrStaffNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrStaffInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.jwtService.TokenDuration())

	response := resdto.LoginResponse{
		AccessToken: result.AccessToken,
		Staff:       result.Staff,
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Staff logout
// @Description Logout current staff session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current staff
// @Description Get current authenticated staff information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedStaffView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Staff not authenticated",
		})
		return
	}

	view, err := h.staffQueries.GetByID(c.Request.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrStaffNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Staff not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
