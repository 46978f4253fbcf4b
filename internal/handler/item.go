package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shareit/internal/model"
    "github.com/iliyamo/shareit/internal/service"
)

// ItemHandler serves /items, item search and comments.
type ItemHandler struct {
    Items *service.ItemService
}

func NewItemHandler(items *service.ItemService) *ItemHandler {
    return &ItemHandler{Items: items}
}

func (h *ItemHandler) Create(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    var in model.NewItem
    if err := bindBody(c, &in); err != nil {
        return err
    }
    it, err := h.Items.Create(c.Request().Context(), uid, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) Update(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var p model.ItemPatch
    if err := bindBody(c, &p); err != nil {
        return err
    }
    it, err := h.Items.Update(c.Request().Context(), uid, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) Get(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    v, err := h.Items.Get(c.Request().Context(), uid, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, v)
}

// List handles GET /items: the sharer's own items.
func (h *ItemHandler) List(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    from, size, err := paging(c)
    if err != nil {
        return err
    }
    items, err := h.Items.ListOwned(c.Request().Context(), uid, from, size)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Search(c echo.Context) error {
    from, size, err := paging(c)
    if err != nil {
        return err
    }
    items, err := h.Items.Search(c.Request().Context(), c.QueryParam("text"), from, size)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

// Comment handles POST /items/:id/comment.
func (h *ItemHandler) Comment(c echo.Context) error {
    uid, err := sharerID(c)
    if err != nil {
        return err
    }
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.NewComment
    if err := bindBody(c, &in); err != nil {
        return err
    }
    cv, err := h.Items.AddComment(c.Request().Context(), uid, id, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, cv)
}
