package gateway

import (
    "io"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/iliyamo/shareit/internal/config"
    "github.com/iliyamo/shareit/internal/middleware"
    "github.com/iliyamo/shareit/internal/utils"
)

// backend records what the gateway forwarded and answers with status.
type backend struct {
    mu     sync.Mutex
    status int // defaults to 201
    hits   int
    method string
    path   string
    query  string
    body   string
    header http.Header
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
    raw, _ := io.ReadAll(r.Body)
    b.mu.Lock()
    b.hits++
    b.method, b.path, b.query, b.body = r.Method, r.URL.Path, r.URL.RawQuery, string(raw)
    b.header = r.Header.Clone()
    status := b.status
    b.mu.Unlock()
    if status == 0 {
        status = http.StatusCreated
    }
    w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    w.WriteHeader(status)
    _, _ = w.Write([]byte(`{"ok":true}`))
}

func (b *backend) count() int {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.hits
}

func newGateway(t *testing.T, serverURL, secret string, setup ...func(*Gateway)) *echo.Echo {
    t.Helper()
    g, err := New(Config{ServerURL: serverURL, Timeout: 2 * time.Second, TokenSecret: secret, TokenTTL: time.Minute}, zap.NewNop())
    require.NoError(t, err)
    for _, fn := range setup {
        fn(g)
    }
    e := echo.New()
    e.DELETE("/users/:id", g.DeleteUser())
    e.GET("/items/search", g.SearchItems())
    e.POST("/users", g.CreateUser())
    e.PATCH("/users/:id", g.PatchUser())
    e.POST("/items", g.CreateItem())
    e.GET("/items", g.ListItems())
    e.GET("/items/:id", g.GetItem())
    e.PATCH("/items/:id", g.UpdateItem())
    e.POST("/items/:id/comment", g.CreateComment())
    e.POST("/bookings", g.CreateBooking())
    e.PATCH("/bookings/:id", g.DecideBooking())
    e.GET("/bookings", g.ListBookings())
    e.POST("/requests", g.CreateRequest())
    e.GET("/requests/all", g.ListOtherRequests())
    return e
}

func send(e *echo.Echo, method, target, body, sharer string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    if sharer != "" {
        req.Header.Set(middleware.SharerHeader, sharer)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestForwardsValidRequestUnchanged(t *testing.T) {
    be := &backend{}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL+"/", "")

    body := `{"name":"Drill","description":"cordless","available":true}`
    req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    req.Header.Set(middleware.SharerHeader, "3")
    req.Header.Set(middleware.GatewayTokenHeader, "forged")
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    require.Equal(t, http.StatusCreated, rec.Code)
    require.JSONEq(t, `{"ok":true}`, rec.Body.String())
    require.Equal(t, 1, be.count())
    require.Equal(t, http.MethodPost, be.method)
    require.Equal(t, "/items", be.path)
    require.Equal(t, body, be.body)
    require.Equal(t, "3", be.header.Get(middleware.SharerHeader))
    require.Empty(t, be.header.Get(middleware.GatewayTokenHeader))
}

func TestSignsForwardedRequests(t *testing.T) {
    be := &backend{}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL, "s3cret")

    rec := send(e, http.MethodGet, "/items?from=0&size=5", "", "7")
    require.Equal(t, http.StatusCreated, rec.Code)
    require.Equal(t, "from=0&size=5", be.query)

    sub, err := utils.ParseServiceToken("s3cret", be.header.Get(middleware.GatewayTokenHeader))
    require.NoError(t, err)
    require.Equal(t, "7", sub)
}

func TestRejectsBeforeForwarding(t *testing.T) {
    be := &backend{}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL, "")

    cases := []struct {
        name, method, target, body, sharer string
        msg                                string
    }{
        {"item without sharer for get", http.MethodGet, "/items/1", "", "", "X-Sharer-User-Id header is required"},
        {"sharer not a number", http.MethodPost, "/requests", `{"description":"x"}`, "abc", `invalid X-Sharer-User-Id header: "abc"`},
        {"item without available", http.MethodPost, "/items", `{"name":"a","description":"b"}`, "1", "invalid available: failed required"},
        {"item with blank name", http.MethodPost, "/items", `{"name":"","description":"b","available":true}`, "1", "invalid name: failed required"},
        {"malformed json", http.MethodPost, "/items", `{"name":`, "1", "malformed request body"},
        {"comment without text", http.MethodPost, "/items/1/comment", `{}`, "1", "invalid text: failed required"},
        {"booking without end", http.MethodPost, "/bookings", `{"itemId":1,"start":"2030-01-01T10:00:00"}`, "1", "invalid end: failed required"},
        {"request without description", http.MethodPost, "/requests", `{}`, "1", "invalid description: failed required"},
        {"negative from", http.MethodGet, "/requests/all?from=-1", "", "1", "invalid from: failed gte"},
        {"zero size", http.MethodGet, "/items?size=0", "", "1", "invalid size: failed gt"},
        {"size not a number", http.MethodGet, "/items?size=ten", "", "1", "from and size must be integers"},
        {"unknown state", http.MethodGet, "/bookings?state=SOMETIMES", "", "1", "Unknown state: SOMETIMES"},
        {"approved not a bool", http.MethodPatch, "/bookings/1?approved=yes", "", "1", "approved must be true or false"},
        {"bad path id", http.MethodPatch, "/users/x", `{}`, "", `invalid id: "x"`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec := send(e, tc.method, tc.target, tc.body, tc.sharer)
            require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
            require.JSONEq(t, `{"message":`+quote(tc.msg)+`}`, rec.Body.String())
        })
    }
    require.Zero(t, be.count())
}

func TestPassesServerRulesThrough(t *testing.T) {
    be := &backend{}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL, "")

    require.Equal(t, http.StatusCreated, send(e, http.MethodPost, "/users", `{"name":"x"}`, "").Code)
    require.Equal(t, http.StatusCreated, send(e, http.MethodPatch, "/users/1", "", "").Code)
    require.Equal(t, http.StatusCreated, send(e, http.MethodGet, "/bookings", "", "").Code)
    require.Equal(t, "", be.query)
    require.Equal(t, 3, be.count())
}

func TestServerDownIsBadGateway(t *testing.T) {
    srv := httptest.NewServer(&backend{})
    url := srv.URL
    srv.Close()
    e := newGateway(t, url, "")

    rec := send(e, http.MethodGet, "/items", "", "1")
    require.Equal(t, http.StatusBadGateway, rec.Code)
    require.JSONEq(t, `{"message":"server unavailable"}`, rec.Body.String())
}

func quote(s string) string {
    b, _ := json.Marshal(s)
    return string(b)
}

func withSearchCache(t *testing.T) func(*Gateway) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    cfg := config.CacheConfig{
        Enabled:      true,
        Paths:        []string{"/items/search"},
        TTL:          time.Minute,
        Prefix:       "test:cache",
        MaxBodyBytes: 1 << 20,
    }
    return func(g *Gateway) {
        g.UseSearchCache(middleware.NewRedisCache(cfg, rdb, zap.NewNop()), middleware.NewCacheEvictor(cfg, rdb, zap.NewNop()))
    }
}

func TestCachedSearchStillRequiresSharer(t *testing.T) {
    be := &backend{status: http.StatusOK}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL, "", withSearchCache(t))

    const target = "/items/search?text=x&from=0&size=5"
    rec := send(e, http.MethodGet, target, "", "1")
    require.Equal(t, http.StatusOK, rec.Code)
    require.Equal(t, "MISS", rec.Header().Get("X-Cache"))

    rec = send(e, http.MethodGet, target, "", "1")
    require.Equal(t, http.StatusOK, rec.Code)
    require.Equal(t, "HIT", rec.Header().Get("X-Cache"))

    rec = send(e, http.MethodGet, target, "", "")
    require.Equal(t, http.StatusBadRequest, rec.Code)
    require.Empty(t, rec.Header().Get("X-Cache"))

    rec = send(e, http.MethodGet, "/items/search?text=x&size=0", "", "1")
    require.Equal(t, http.StatusBadRequest, rec.Code)
    require.Equal(t, 1, be.count())
}

func TestItemWritesEvictCachedSearch(t *testing.T) {
    be := &backend{status: http.StatusOK}
    srv := httptest.NewServer(be)
    defer srv.Close()
    e := newGateway(t, srv.URL, "", withSearchCache(t))

    const target = "/items/search?text=drill"
    require.Equal(t, "MISS", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))
    require.Equal(t, "HIT", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))

    require.Equal(t, http.StatusOK, send(e, http.MethodPatch, "/items/1", `{"available":false}`, "1").Code)
    require.Equal(t, "MISS", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))
    require.Equal(t, "HIT", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))

    require.Equal(t, http.StatusOK, send(e, http.MethodDelete, "/users/1", "", "").Code)
    require.Equal(t, "MISS", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))

    // failed writes leave the cache alone
    be.mu.Lock()
    be.status = http.StatusNotFound
    be.mu.Unlock()
    require.Equal(t, http.StatusNotFound, send(e, http.MethodPatch, "/items/9", `{"name":"x"}`, "1").Code)
    be.mu.Lock()
    be.status = http.StatusOK
    be.mu.Unlock()
    require.Equal(t, "HIT", send(e, http.MethodGet, target, "", "1").Header().Get("X-Cache"))
}
