package handler

import (
    "context"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shareit/internal/model"
    "github.com/iliyamo/shareit/internal/service"
)

// BookingHandler serves /bookings.
type BookingHandler struct {
    Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
    return &BookingHandler{Bookings: bookings}
}

func (h *BookingHandler) Create(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    var in model.NewBooking
    if err := bindBody(c, &in); err != nil {
        return err
    }
    b, err := h.Bookings.Create(c.Request().Context(), uid, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, b)
}

// Decide handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) Decide(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    approved, err := strconv.ParseBool(c.QueryParam("approved"))
    if err != nil {
        return badRequest("approved must be true or false")
    }
    b, err := h.Bookings.Decide(c.Request().Context(), uid, id, approved)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Get(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    b, err := h.Bookings.Get(c.Request().Context(), uid, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, b)
}

// ListForBooker handles GET /bookings.
func (h *BookingHandler) ListForBooker(c echo.Context) error {
    return h.list(c, h.Bookings.ListForBooker)
}

// ListForOwner handles GET /bookings/owner.
func (h *BookingHandler) ListForOwner(c echo.Context) error {
    return h.list(c, h.Bookings.ListForOwner)
}

type bookingLister func(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)

func (h *BookingHandler) list(c echo.Context, fn bookingLister) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    from, size, err := paging(c)
    if err != nil {
        return err
    }
    state := c.QueryParam("state")
    if state == "" {
        state = string(model.StateAll)
    }
    out, err := fn(c.Request().Context(), uid, state, from, size)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, out)
}
