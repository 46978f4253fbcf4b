// Package gateway is the public ShareIt tier.  It checks headers, query
// values and request bodies, then forwards valid requests unchanged to
// the server and relays the server's answer.
package gateway

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    jsoniter "github.com/json-iterator/go"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"

    "github.com/iliyamo/shareit/internal/middleware"
    "github.com/iliyamo/shareit/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is what the gateway needs to reach the server.
type Config struct {
    ServerURL   string
    Timeout     time.Duration
    TokenSecret string
    TokenTTL    time.Duration
}

// Gateway validates and forwards requests to the server tier.
type Gateway struct {
    cfg      Config
    validate *validator.Validate
    proxy    echo.HandlerFunc
    cache    echo.MiddlewareFunc // wraps forwarding of item search
    evict    echo.MiddlewareFunc // wraps forwarding of writes that change search results
    log      *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Gateway, error) {
    target, err := url.Parse(cfg.ServerURL)
    if err != nil {
        return nil, fmt.Errorf("parse server url: %w", err)
    }
    transport := http.DefaultTransport.(*http.Transport).Clone()
    transport.ResponseHeaderTimeout = cfg.Timeout

    proxy := echomw.ProxyWithConfig(echomw.ProxyConfig{
        Balancer:  echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{Name: "server", URL: target}}),
        Transport: transport,
        ErrorHandler: func(c echo.Context, err error) error {
            log.Warn("server unreachable", zap.String("path", c.Request().URL.Path), zap.Error(err))
            return echo.NewHTTPError(http.StatusBadGateway, "server unavailable")
        },
    })
    g := &Gateway{
        cfg:      cfg,
        validate: validator.New(validator.WithRequiredStructEnabled()),
        cache:    passThrough,
        evict:    passThrough,
        log:      log,
    }
    g.proxy = proxy(func(echo.Context) error { return nil })
    return g, nil
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// UseSearchCache installs the search response cache and its evictor.  The
// cache only sees requests that already passed the search checks.  Call
// it before the handlers are built.
func (g *Gateway) UseSearchCache(cache, evict echo.MiddlewareFunc) {
    if cache != nil {
        g.cache = cache
    }
    if evict != nil {
        g.evict = evict
    }
}

func badRequest(format string, args ...any) error {
    return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// sharer checks X-Sharer-User-Id.  When required is false a missing
// header is accepted and the server treats the caller as user 0.
func sharer(c echo.Context, required bool) error {
    raw := strings.TrimSpace(c.Request().Header.Get(middleware.SharerHeader))
    if raw == "" {
        if required {
            return badRequest("%s header is required", middleware.SharerHeader)
        }
        return nil
    }
    if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
        return badRequest("invalid %s header: %q", middleware.SharerHeader, raw)
    }
    return nil
}

// body decodes the request body into dst, validates it and puts the raw
// bytes back so they are forwarded untouched.
func (g *Gateway) body(c echo.Context, dst any) error {
    raw, err := io.ReadAll(c.Request().Body)
    if err != nil {
        return badRequest("cannot read request body")
    }
    c.Request().Body = io.NopCloser(bytes.NewReader(raw))
    _, free := dst.(*anyBody)
    if free && len(bytes.TrimSpace(raw)) == 0 {
        return nil
    }
    if err := json.Unmarshal(raw, dst); err != nil {
        return badRequest("malformed request body")
    }
    if free {
        return nil
    }
    return g.check(dst)
}

// check runs the validator and reports the first failing field.
func (g *Gateway) check(v any) error {
    err := g.validate.Struct(v)
    if err == nil {
        return nil
    }
    var verrs validator.ValidationErrors
    if errors.As(err, &verrs) && len(verrs) > 0 {
        fe := verrs[0]
        return badRequest("invalid %s: failed %s", lowerFirst(fe.Field()), fe.Tag())
    }
    return badRequest("invalid request")
}

func lowerFirst(s string) string {
    if s == "" {
        return s
    }
    return strings.ToLower(s[:1]) + s[1:]
}

// paging validates from and size, defaulting to 0 and 20.
func (g *Gateway) paging(c echo.Context) error {
    q := pageQuery{From: 0, Size: 20}
    if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
        return badRequest("from and size must be integers")
    }
    return g.check(&q)
}

func (g *Gateway) state(c echo.Context) error {
    q := stateQuery{State: "ALL"}
    if s := c.QueryParam("state"); s != "" {
        q.State = s
    }
    if g.validate.Struct(&q) != nil {
        return badRequest("Unknown state: %s", q.State)
    }
    return nil
}

func (g *Gateway) pathID(c echo.Context, name string) error {
    if _, err := strconv.ParseInt(c.Param(name), 10, 64); err != nil {
        return badRequest("invalid %s: %q", name, c.Param(name))
    }
    return nil
}

// forward sends the request to the server.  The request id is passed on
// and, with a token secret configured, the request is signed for the
// sharer it carries.
func (g *Gateway) forward(c echo.Context) error {
    req := c.Request()
    req.Header.Del(middleware.GatewayTokenHeader)
    if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
        req.Header.Set(echo.HeaderXRequestID, id)
    }
    if g.cfg.TokenSecret != "" {
        tok, err := utils.NewServiceToken(g.cfg.TokenSecret, strings.TrimSpace(req.Header.Get(middleware.SharerHeader)), g.cfg.TokenTTL)
        if err != nil {
            return fmt.Errorf("sign gateway token: %w", err)
        }
        req.Header.Set(middleware.GatewayTokenHeader, tok)
    }
    return g.proxy(c)
}
