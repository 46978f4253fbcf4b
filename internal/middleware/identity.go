package middleware

import (
    "strings"

    "github.com/labstack/echo/v4"
)

// SharerHeader carries the id of the acting user on every ShareIt call.
const SharerHeader = "X-Sharer-User-Id"

// GatewayTokenHeader carries the gateway's service token to the server.
const GatewayTokenHeader = "X-Gateway-Token"

// sharerID returns the raw X-Sharer-User-Id value, or "anon" when the
// header is missing.  It is only used for keys and log fields; handlers
// parse the header themselves.
func sharerID(c echo.Context) string {
    if v := strings.TrimSpace(c.Request().Header.Get(SharerHeader)); v != "" {
        return v
    }
    return "anon"
}
