package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/repository/memstore"
	"github.com/iliyamo/shareit/internal/service"
)

func newServer(t *testing.T, secret string) *echo.Echo {
	t.Helper()
	store := memstore.New()
	log := zap.NewNop()
	e := New(log)
	RegisterServer(e, ServerHandlers{
		Users:    handler.NewUserHandler(service.NewUserService(store, log)),
		Items:    handler.NewItemHandler(service.NewItemService(store, log)),
		Bookings: handler.NewBookingHandler(service.NewBookingService(store, nil, log)),
		Requests: handler.NewRequestHandler(service.NewRequestService(store, log)),
	}, secret, log)
	return e
}

type call struct {
	method, path, body string
	sharer             int64
}

func do(e http.Handler, c call) *httptest.ResponseRecorder {
	var req *http.Request
	if c.body != "" {
		req = httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(c.method, c.path, nil)
	}
	if c.sharer != 0 {
		req.Header.Set(middleware.SharerHeader, strconv.FormatInt(c.sharer, 10))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func future(d time.Duration) string {
	return time.Now().UTC().Add(d).Format("2006-01-02T15:04:05")
}

func TestServerUserLifecycle(t *testing.T) {
	e := newServer(t, "")

	rec := do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"Ann","email":"ann@x.io"}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	decode(t, rec, &u)
	require.Equal(t, "Ann", u.Name)

	rec = do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"Bob","email":"ANN@x.io"}`})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"message":"user with email ANN@x.io already exists"}`, rec.Body.String())

	rec = do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"Bob"}`})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	path := "/users/" + strconv.FormatInt(u.ID, 10)
	rec = do(e, call{method: http.MethodPatch, path: path, body: `{"name":"Annie","email":null}`})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":1,"name":"Annie","email":"ann@x.io"}`, rec.Body.String())

	rec = do(e, call{method: http.MethodGet, path: "/users"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":1,"name":"Annie","email":"ann@x.io"}]`, rec.Body.String())

	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodDelete, path: path}).Code)
	require.Equal(t, http.StatusNotFound, do(e, call{method: http.MethodGet, path: path}).Code)
	require.Equal(t, http.StatusBadRequest, do(e, call{method: http.MethodGet, path: "/users/abc"}).Code)
}

func TestServerBookingFlow(t *testing.T) {
	e := newServer(t, "")
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"owner","email":"o@x.io"}`}).Code)
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"booker","email":"b@x.io"}`}).Code)

	rec := do(e, call{method: http.MethodPost, path: "/items", sharer: 1, body: `{"name":"Tent","description":"2 person","available":true}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"id":1,"name":"Tent","description":"2 person","available":true,"ownerId":1}`, rec.Body.String())

	rec = do(e, call{method: http.MethodPost, path: "/items", body: `{"name":"Tent","description":"x","available":true}`})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := `{"itemId":1,"start":"` + future(time.Hour) + `","end":"` + future(2*time.Hour) + `"}`
	rec = do(e, call{method: http.MethodPost, path: "/bookings", sharer: 1, body: body})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, call{method: http.MethodPost, path: "/bookings", sharer: 2, body: body})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var b struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Item   struct {
			ID int64 `json:"id"`
		} `json:"item"`
		Booker struct {
			ID int64 `json:"id"`
		} `json:"booker"`
	}
	decode(t, rec, &b)
	require.Equal(t, "WAITING", b.Status)
	require.Equal(t, int64(1), b.Item.ID)
	require.Equal(t, int64(2), b.Booker.ID)

	require.Equal(t, http.StatusBadRequest, do(e, call{method: http.MethodPatch, path: "/bookings/1?approved=maybe", sharer: 1}).Code)
	require.Equal(t, http.StatusNotFound, do(e, call{method: http.MethodPatch, path: "/bookings/1?approved=true", sharer: 2}).Code)
	rec = do(e, call{method: http.MethodPatch, path: "/bookings/1?approved=true", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &b)
	require.Equal(t, "APPROVED", b.Status)
	require.Equal(t, http.StatusBadRequest, do(e, call{method: http.MethodPatch, path: "/bookings/1?approved=false", sharer: 1}).Code)

	rec = do(e, call{method: http.MethodGet, path: "/bookings/owner?state=FUTURE", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	require.Len(t, list, 1)

	rec = do(e, call{method: http.MethodGet, path: "/bookings?state=SOMETIMES", sharer: 2})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Unknown state: SOMETIMES"}`, rec.Body.String())

	rec = do(e, call{method: http.MethodGet, path: "/items/1", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		NextBooking *struct {
			ID       int64 `json:"id"`
			BookerID int64 `json:"bookerId"`
		} `json:"nextBooking"`
		Comments []any `json:"comments"`
	}
	decode(t, rec, &view)
	require.NotNil(t, view.NextBooking)
	require.Equal(t, int64(2), view.NextBooking.BookerID)
	require.NotNil(t, view.Comments)

	rec = do(e, call{method: http.MethodPost, path: "/items/1/comment", sharer: 2, body: `{"text":"nice"}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cv map[string]any
	decode(t, rec, &cv)
	require.Equal(t, "booker", cv["authorName"])
}

func TestServerPagingAndSearch(t *testing.T) {
	e := newServer(t, "")
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"owner","email":"o@x.io"}`}).Code)
	for _, name := range []string{"Drill", "Saw", "Hammer drill"} {
		rec := do(e, call{method: http.MethodPost, path: "/items", sharer: 1, body: `{"name":"` + name + `","description":"tool","available":true}`})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(e, call{method: http.MethodGet, path: "/items/search?text=drill", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	decode(t, rec, &items)
	require.Len(t, items, 2)

	rec = do(e, call{method: http.MethodGet, path: "/items/search?text=", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, call{method: http.MethodGet, path: "/items?from=1&size=2", sharer: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &items)
	require.Len(t, items, 2)
	require.Equal(t, "Drill", items[0]["name"])

	require.Equal(t, http.StatusBadRequest, do(e, call{method: http.MethodGet, path: "/items?from=-1", sharer: 1}).Code)
	require.Equal(t, http.StatusBadRequest, do(e, call{method: http.MethodGet, path: "/items?size=abc", sharer: 1}).Code)
}

func TestServerRequests(t *testing.T) {
	e := newServer(t, "")
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"a","email":"a@x.io"}`}).Code)
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodPost, path: "/users", body: `{"name":"b","email":"b@x.io"}`}).Code)

	rec := do(e, call{method: http.MethodPost, path: "/requests", sharer: 1, body: `{"description":"need a ladder"}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(e, call{method: http.MethodPost, path: "/items", sharer: 2, body: `{"name":"Ladder","description":"3m","available":true,"requestId":1}`})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"requestId":1`)

	rec = do(e, call{method: http.MethodGet, path: "/requests/1", sharer: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	var r struct {
		Description string           `json:"description"`
		Items       []map[string]any `json:"items"`
	}
	decode(t, rec, &r)
	require.Equal(t, "need a ladder", r.Description)
	require.Len(t, r.Items, 1)

	rec = do(e, call{method: http.MethodGet, path: "/requests/all", sharer: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	decode(t, rec, &all)
	require.Len(t, all, 1)

	require.Equal(t, http.StatusNotFound, do(e, call{method: http.MethodGet, path: "/requests", sharer: 9}).Code)
	require.Equal(t, http.StatusNotFound, do(e, call{method: http.MethodGet, path: "/requests/7", sharer: 1}).Code)
}

func TestServerRejectsUnsignedRequestsWhenSecretSet(t *testing.T) {
	e := newServer(t, "s3cret")
	require.Equal(t, http.StatusUnauthorized, do(e, call{method: http.MethodGet, path: "/users"}).Code)
	require.Equal(t, http.StatusOK, do(e, call{method: http.MethodGet, path: "/healthz"}).Code)
}
