package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/mpdash/internal/client"
	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/jsonvalue"
	"github.com/guttosm/mpdash/internal/normalize"
	"github.com/guttosm/mpdash/internal/service"
)

type mockFeed struct {
	res     *models.Result
	ov      *models.Overview
	err     error
	gotRes  models.Resource
	gotFilt models.QueryFilter
}

func (m *mockFeed) List(_ context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error) {
	m.gotRes, m.gotFilt = r, f
	return m.res, m.err
}

func (m *mockFeed) Overview(_ context.Context, f models.QueryFilter) (*models.Overview, error) {
	m.gotFilt = f
	return m.ov, m.err
}

var _ service.FeedService = (*mockFeed)(nil)

type mockSync struct {
	reports      []models.SyncReport
	entries      []models.SyncEntry
	err          error
	gotResources []models.Resource
	gotFilt      models.QueryFilter
	gotForce     bool
	gotLimit     int
}

func (m *mockSync) Sync(_ context.Context, resources []models.Resource, f models.QueryFilter, force bool) ([]models.SyncReport, error) {
	m.gotResources, m.gotFilt, m.gotForce = resources, f, force
	return m.reports, m.err
}

func (m *mockSync) History(_ context.Context, _ models.Resource, limit int) ([]models.SyncEntry, error) {
	m.gotLimit = limit
	return m.entries, m.err
}

var _ service.SyncService = (*mockSync)(nil)

func setupRouterWithMocks(feed service.FeedService, sync service.SyncService) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(feed, sync)
	h.now = func() time.Time { return time.Date(2024, 5, 6, 23, 30, 0, 0, time.UTC) }
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/orders", h.GetOrders)
	v1.GET("/stocks", h.GetStocks)
	v1.GET("/overview", h.GetOverview)
	v1.POST("/sync", h.PostSync)
	v1.GET("/sync/log", h.GetSyncLog)
	return r, h
}

func okResult(body string) *models.Result {
	raw := jsonvalue.MustParse(body)
	return &models.Result{Raw: raw, List: normalize.ToList(raw)}
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGetOrders_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		feed   *mockFeed
		query  string
		status int
	}{
		{name: "missing dateFrom", feed: &mockFeed{}, query: "", status: http.StatusBadRequest},
		{name: "bad limit", feed: &mockFeed{}, query: "?dateFrom=2024-01-01&limit=ten", status: http.StatusBadRequest},
		{name: "negative page", feed: &mockFeed{}, query: "?dateFrom=2024-01-01&page=-1", status: http.StatusBadRequest},
		{name: "bad raw flag", feed: &mockFeed{}, query: "?dateFrom=2024-01-01&raw=maybe", status: http.StatusBadRequest},
		{name: "success", feed: &mockFeed{res: okResult(`[{"id":1}]`)}, query: "?dateFrom=2024-01-01&dateTo=2024-01-31&limit=10&page=2", status: http.StatusOK},
		{
			name:   "upstream status",
			feed:   &mockFeed{err: &client.StatusError{Method: "GET", URL: "http://x/orders", StatusCode: 401}},
			query:  "?dateFrom=2024-01-01",
			status: http.StatusBadGateway,
		},
		{
			name:   "upstream timeout",
			feed:   &mockFeed{err: &url.Error{Op: "Get", URL: "http://x/orders", Err: context.DeadlineExceeded}},
			query:  "?dateFrom=2024-01-01",
			status: http.StatusGatewayTimeout,
		},
		{
			name:   "upstream unreachable",
			feed:   &mockFeed{err: &url.Error{Op: "Get", URL: "http://x/orders", Err: errors.New("connection refused")}},
			query:  "?dateFrom=2024-01-01",
			status: http.StatusBadGateway,
		},
		{
			name:   "upstream body too large",
			feed:   &mockFeed{err: fmt.Errorf("/orders: %w", client.ErrBodyTooLarge)},
			query:  "?dateFrom=2024-01-01",
			status: http.StatusBadGateway,
		},
		{name: "other error", feed: &mockFeed{err: errors.New("boom")}, query: "?dateFrom=2024-01-01", status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := setupRouterWithMocks(tc.feed, nil)
			w := serve(r, http.MethodGet, "/api/v1/orders"+tc.query)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				var er map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er["message"] == nil {
					t.Fatalf("expected error response, got %s", w.Body.String())
				}
			}
		})
	}
}

func TestGetOrders_PassesFilterAndShapesBody(t *testing.T) {
	feed := &mockFeed{res: okResult(`[{"id":1},{"id":2}]`)}
	r, _ := setupRouterWithMocks(feed, nil)

	w := serve(r, http.MethodGet, "/api/v1/orders?dateFrom=2024-01-01&dateTo=2024-01-31&limit=10&page=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	want := models.QueryFilter{DateFrom: "2024-01-01", DateTo: "2024-01-31", Limit: 10, Page: 2}
	if feed.gotRes != models.Orders || feed.gotFilt != want {
		t.Fatalf("service got %s %+v", feed.gotRes, feed.gotFilt)
	}
	wantBody := `{"resource":"orders","count":2,"list":[{"id":1},{"id":2}],"raw":[{"id":1},{"id":2}]}`
	if w.Body.String() != wantBody {
		t.Fatalf("body=%s", w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/v1/orders?dateFrom=2024-01-01&raw=false")
	if strings.Contains(w.Body.String(), `"raw"`) {
		t.Fatalf("raw=false must omit raw: %s", w.Body.String())
	}
}

func TestGetStocks_DefaultsDateFromToToday(t *testing.T) {
	feed := &mockFeed{res: okResult(`[]`)}
	r, _ := setupRouterWithMocks(feed, nil)

	w := serve(r, http.MethodGet, "/api/v1/stocks")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body=%s", w.Code, w.Body.String())
	}
	if feed.gotRes != models.Stocks || feed.gotFilt.DateFrom != "2024-05-06" {
		t.Fatalf("service got %s %+v", feed.gotRes, feed.gotFilt)
	}
	if w.Body.String() != `{"resource":"stocks","count":0,"list":[],"raw":[]}` {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestGetOverview(t *testing.T) {
	feed := &mockFeed{ov: &models.Overview{
		Filter: models.QueryFilter{DateFrom: "2024-01-01"},
		Counts: map[models.Resource]int{models.Orders: 1, models.Sales: 2, models.Incomes: 3, models.Stocks: 4},
	}}
	r, _ := setupRouterWithMocks(feed, nil)

	if w := serve(r, http.MethodGet, "/api/v1/overview"); w.Code != http.StatusBadRequest {
		t.Fatalf("missing dateFrom: status %d", w.Code)
	}

	w := serve(r, http.MethodGet, "/api/v1/overview?dateFrom=2024-01-01")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var out struct {
		Counts map[string]int `json:"counts"`
		Total  int            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Total != 10 || out.Counts["stocks"] != 4 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestPostSync_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		sync   *mockSync
		query  string
		status int
	}{
		{name: "archive disabled", sync: nil, query: "?dateFrom=2024-01-01", status: http.StatusServiceUnavailable},
		{name: "unknown resource", sync: &mockSync{}, query: "?resources=refunds&dateFrom=2024-01-01", status: http.StatusBadRequest},
		{name: "missing dateFrom", sync: &mockSync{}, query: "?resources=orders", status: http.StatusBadRequest},
		{name: "stocks only defaults date", sync: &mockSync{}, query: "?resources=stocks", status: http.StatusOK},
		{name: "stocks with dated resource needs date", sync: &mockSync{}, query: "?resources=stocks,sales", status: http.StatusBadRequest},
		{name: "bad force", sync: &mockSync{}, query: "?dateFrom=2024-01-01&force=yes please", status: http.StatusBadRequest},
		{name: "storage failure", sync: &mockSync{err: fmt.Errorf("sync orders: %w", errors.New("db down"))}, query: "?dateFrom=2024-01-01", status: http.StatusInternalServerError},
		{
			name:   "upstream failure",
			sync:   &mockSync{err: fmt.Errorf("sync orders: fetch: %w", &client.StatusError{StatusCode: 500})},
			query:  "?dateFrom=2024-01-01",
			status: http.StatusBadGateway,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var svc service.SyncService
			if tc.sync != nil {
				svc = tc.sync
			}
			r, _ := setupRouterWithMocks(&mockFeed{}, svc)
			w := serve(r, http.MethodPost, "/api/v1/sync"+strings.ReplaceAll(tc.query, " ", "%20"))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestPostSync_Success(t *testing.T) {
	ms := &mockSync{reports: []models.SyncReport{{Resource: models.Orders, Rows: 3}, {Resource: models.Sales, Skipped: true}}}
	r, _ := setupRouterWithMocks(&mockFeed{}, ms)

	w := serve(r, http.MethodPost, "/api/v1/sync?resources=orders,sales&dateFrom=2024-01-01&force=true&limit=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body=%s", w.Code, w.Body.String())
	}
	if len(ms.gotResources) != 2 || !ms.gotForce || ms.gotFilt.Limit != 100 {
		t.Fatalf("service got %v force=%v %+v", ms.gotResources, ms.gotForce, ms.gotFilt)
	}
	var out []models.SyncReport
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out) != 2 || !out[1].Skipped {
		t.Fatalf("body=%s err=%v", w.Body.String(), err)
	}
}

func TestGetSyncLog(t *testing.T) {
	ms := &mockSync{}
	r, _ := setupRouterWithMocks(&mockFeed{}, ms)

	if w := serve(r, http.MethodGet, "/api/v1/sync/log?resource=refunds"); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown resource: status %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/v1/sync/log?limit=x"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: status %d", w.Code)
	}

	w := serve(r, http.MethodGet, "/api/v1/sync/log?resource=orders&limit=5")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("status %d body=%s", w.Code, w.Body.String())
	}
	if ms.gotLimit != 5 {
		t.Fatalf("limit=%d", ms.gotLimit)
	}

	ms.err = errors.New("db down")
	if w := serve(r, http.MethodGet, "/api/v1/sync/log"); w.Code != http.StatusInternalServerError {
		t.Fatalf("storage error: status %d", w.Code)
	}
}
