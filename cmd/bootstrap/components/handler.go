package components

import (
	"salon-assist/internal/handler"
	"salon-assist/internal/handler/api"
	"salon-assist/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRequestHandler,
		api.NewConflictHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
