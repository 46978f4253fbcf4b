// Package handler exposes the ShareIt server API.  Handlers parse the
// sharer header, path and query values, call a service and render either
// the result or a {"message": ...} error body.
package handler

import (
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/shareit/internal/middleware"
    "github.com/iliyamo/shareit/internal/service"
)

// Query defaults shared by every paged endpoint.
const (
    defaultFrom = 0
    defaultSize = 20
)

// badRequest is returned for malformed headers, ids or query values.
func badRequest(format string, args ...any) error {
    return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// sharerID reads X-Sharer-User-Id.  A missing header yields 0, which the
// services reject where a user is required.
func sharerID(c echo.Context) (int64, error) {
    raw := strings.TrimSpace(c.Request().Header.Get(middleware.SharerHeader))
    if raw == "" {
        return 0, nil
    }
    id, err := strconv.ParseInt(raw, 10, 64)
    if err != nil {
        return 0, badRequest("invalid %s header: %q", middleware.SharerHeader, raw)
    }
    return id, nil
}

func pathID(c echo.Context, name string) (int64, error) {
    id, err := strconv.ParseInt(c.Param(name), 10, 64)
    if err != nil {
        return 0, badRequest("invalid %s: %q", name, c.Param(name))
    }
    return id, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
    raw := strings.TrimSpace(c.QueryParam(name))
    if raw == "" {
        return def, nil
    }
    n, err := strconv.Atoi(raw)
    if err != nil {
        return 0, badRequest("invalid %s: %q", name, raw)
    }
    return n, nil
}

// paging returns the from and size query values.  Range checks are left
// to the services.
func paging(c echo.Context) (from, size int, err error) {
    if from, err = queryInt(c, "from", defaultFrom); err != nil {
        return 0, 0, err
    }
    if size, err = queryInt(c, "size", defaultSize); err != nil {
        return 0, 0, err
    }
    return from, size, nil
}

func bindBody(c echo.Context, dst any) error {
    if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
        return badRequest("malformed request body")
    }
    return nil
}

// ErrorHandler renders every error as {"message": ...}.  Service errors
// map to 400, 404 or 409; anything unexpected is logged and reported as
// 500 without details.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }
        status, msg := http.StatusInternalServerError, "internal error"
        var he *echo.HTTPError
        switch kind := service.KindOf(err); {
        case kind == service.KindValidation:
            status, msg = http.StatusBadRequest, err.Error()
        case kind == service.KindNotFound:
            status, msg = http.StatusNotFound, err.Error()
        case kind == service.KindDuplicate:
            status, msg = http.StatusConflict, err.Error()
        case errors.As(err, &he):
            status, msg = he.Code, fmt.Sprint(he.Message)
        default:
            log.Error("unhandled error",
                zap.String("method", c.Request().Method),
                zap.String("path", c.Request().URL.Path),
                zap.Error(err))
        }
        if c.Request().Method == http.MethodHead {
            _ = c.NoContent(status)
            return
        }
        _ = c.JSON(status, echo.Map{"message": msg})
    }
}
