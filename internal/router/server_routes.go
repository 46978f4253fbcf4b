package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
)

// ServerHandlers groups the handlers of the server tier.
type ServerHandlers struct {
	Users    *handler.UserHandler
	Items    *handler.ItemHandler
	Bookings *handler.BookingHandler
	Requests *handler.RequestHandler
}

// RegisterServer mounts the ShareIt API.  With a non-empty secret every
// route requires a valid gateway token.
func RegisterServer(e *echo.Echo, h ServerHandlers, secret string, log *zap.Logger) {
	g := e.Group("", middleware.ServiceAuth(secret, log))

	g.POST("/users", h.Users.Create)
	g.GET("/users", h.Users.List)
	g.GET("/users/:id", h.Users.Get)
	g.PATCH("/users/:id", h.Users.Patch)
	g.DELETE("/users/:id", h.Users.Delete)

	g.POST("/items", h.Items.Create)
	g.GET("/items", h.Items.List)
	g.GET("/items/search", h.Items.Search)
	g.GET("/items/:id", h.Items.Get)
	g.PATCH("/items/:id", h.Items.Update)
	g.POST("/items/:id/comment", h.Items.Comment)

	g.POST("/bookings", h.Bookings.Create)
	g.GET("/bookings", h.Bookings.ListForBooker)
	g.GET("/bookings/owner", h.Bookings.ListForOwner)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.PATCH("/bookings/:id", h.Bookings.Decide)

	g.POST("/requests", h.Requests.Create)
	g.GET("/requests", h.Requests.ListOwn)
	g.GET("/requests/all", h.Requests.ListOthers)
	g.GET("/requests/:id", h.Requests.Get)
}
