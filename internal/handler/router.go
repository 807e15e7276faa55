package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/handler/api"
	"salon-assist/internal/handler/middleware"
	"salon-assist/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, authHandler *api.AuthHandler, requestHandler *api.RequestHandler, conflictHandler *api.ConflictHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, requestHandler, conflictHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, authHandler *api.AuthHandler, requestHandler *api.RequestHandler, conflictHandler *api.ConflictHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		adminOnly := []gin.HandlerFunc{authMiddleware.RequireRole(staff.RoleAdmin)}

		requests := apiGroup.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.List},
				{Method: http.MethodGet, Path: "/attention", Handler: requestHandler.Attention, Mw: adminOnly},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.Get},
				{Method: http.MethodGet, Path: "/:id/candidates", Handler: requestHandler.Candidates, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/assign", Handler: requestHandler.Assign, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: requestHandler.Accept},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: requestHandler.Decline},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: requestHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: requestHandler.Complete},
			})
		}

		conflicts := apiGroup.Group("/conflicts")
		conflicts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(conflicts, []route{
				{Method: http.MethodGet, Path: "", Handler: conflictHandler.List, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
