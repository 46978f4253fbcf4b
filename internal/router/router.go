package router // package router builds the echo instances of both tiers and registers their routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
)

// New returns an echo instance with the middleware shared by the server
// and the gateway: panic recovery, request ids, one log line per request
// and the {"message": ...} error renderer.  GET /healthz is registered.
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(
		echomw.Recover(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
	)
	RegisterRoutes(e)
	return e
}

// RegisterRoutes registers routes that need no sharer: the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
