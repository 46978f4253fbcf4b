package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/shareit/internal/utils"
)

// ServiceAuth makes the server accept only requests forwarded by the
// gateway.  Each request must carry an X-Gateway-Token signed with secret
// whose subject equals the X-Sharer-User-Id header.  An empty secret
// disables the check.
func ServiceAuth(secret string, log *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        if secret == "" {
            return next
        }
        return func(c echo.Context) error {
            raw := strings.TrimSpace(c.Request().Header.Get(GatewayTokenHeader))
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing gateway token"})
            }
            sub, err := utils.ParseServiceToken(secret, raw)
            if err != nil {
                log.Debug("gateway token rejected", zap.Error(err))
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid gateway token"})
            }
            if sub != strings.TrimSpace(c.Request().Header.Get(SharerHeader)) {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "gateway token does not match sharer"})
            }
            return next(c)
        }
    }
}
