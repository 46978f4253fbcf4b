package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shareit/internal/model"
    "github.com/iliyamo/shareit/internal/service"
)

// UserHandler serves /users.
type UserHandler struct {
    Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
    return &UserHandler{Users: users}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
    var in model.NewUser
    if err := bindBody(c, &in); err != nil {
        return err
    }
    u, err := h.Users.Create(c.Request().Context(), in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, u)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    u, err := h.Users.Get(c.Request().Context(), id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, u)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
    users, err := h.Users.List(c.Request().Context())
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, users)
}

// Patch handles PATCH /users/:id.
func (h *UserHandler) Patch(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var p model.UserPatch
    if err := bindBody(c, &p); err != nil {
        return err
    }
    u, err := h.Users.Patch(c.Request().Context(), id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    if err := h.Users.Delete(c.Request().Context(), id); err != nil {
        return err
    }
    return c.NoContent(http.StatusOK)
}
