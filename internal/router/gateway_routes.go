package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/gateway"
)

// RegisterGateway mounts the public API.  mw runs before every route;
// the gateway main passes the Redis rate limiter.  The search cache is
// installed on g so it runs after the request checks.
func RegisterGateway(e *echo.Echo, g *gateway.Gateway, mw ...echo.MiddlewareFunc) {
	api := e.Group("", mw...)

	api.POST("/users", g.CreateUser())
	api.GET("/users", g.ListUsers())
	api.GET("/users/:id", g.GetUser())
	api.PATCH("/users/:id", g.PatchUser())
	api.DELETE("/users/:id", g.DeleteUser())

	api.POST("/items", g.CreateItem())
	api.GET("/items", g.ListItems())
	api.GET("/items/search", g.SearchItems())
	api.GET("/items/:id", g.GetItem())
	api.PATCH("/items/:id", g.UpdateItem())
	api.POST("/items/:id/comment", g.CreateComment())

	api.POST("/bookings", g.CreateBooking())
	api.GET("/bookings", g.ListBookings())
	api.GET("/bookings/owner", g.ListBookings())
	api.GET("/bookings/:id", g.GetBooking())
	api.PATCH("/bookings/:id", g.DecideBooking())

	api.POST("/requests", g.CreateRequest())
	api.GET("/requests", g.ListOwnRequests())
	api.GET("/requests/all", g.ListOtherRequests())
	api.GET("/requests/:id", g.GetRequest())
}
