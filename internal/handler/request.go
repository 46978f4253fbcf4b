package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shareit/internal/model"
    "github.com/iliyamo/shareit/internal/service"
)

// RequestHandler serves /requests.
type RequestHandler struct {
    Requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
    return &RequestHandler{Requests: requests}
}

func (h *RequestHandler) Create(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    var in model.NewItemRequest
    if err := bindBody(c, &in); err != nil {
        return err
    }
    r, err := h.Requests.Create(c.Request().Context(), uid, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, r)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    out, err := h.Requests.ListOwn(c.Request().Context(), uid)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, out)
}

// ListOthers handles GET /requests/all.
func (h *RequestHandler) ListOthers(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    from, size, err := paging(c)
    if err != nil {
        return err
    }
    out, err := h.Requests.ListOthers(c.Request().Context(), uid, from, size)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) Get(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    r, err := h.Requests.Get(c.Request().Context(), uid, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, r)
}
