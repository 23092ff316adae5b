package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/mpdash/internal/client"
	"github.com/guttosm/mpdash/internal/domain/dto"
	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/middleware"
	"github.com/guttosm/mpdash/internal/service"
)

// Handler exposes marketplace resources and the archive over HTTP.
//
// Responsibilities:
//   - Validate incoming query parameters
//   - Call the feed and sync services with the request context
//   - Translate upstream failures into gateway status codes
type Handler struct {
	feed service.FeedService
	sync service.SyncService
	now  func() time.Time
}

// NewHandler constructs a Handler. sync may be nil when the archive is not
// configured; the sync routes then answer 503.
func NewHandler(feed service.FeedService, sync service.SyncService) *Handler {
	return &Handler{feed: feed, sync: sync, now: time.Now}
}

// GetOrders godoc
// @Summary      List orders
// @Description  Fetches one page of orders from the marketplace API and returns the normalized list
// @Tags         resources
// @Produce      json
// @Param        dateFrom  query     string  true   "Start date" example(2024-01-01)
// @Param        dateTo    query     string  false  "End date" example(2024-01-31)
// @Param        limit     query     int     false  "Page size" default(50)
// @Param        page      query     int     false  "Page number" default(1)
// @Param        raw       query     bool    false  "Include the upstream body" default(true)
// @Success      200       {object}  dto.ListResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502       {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      504       {object}  dto.ErrorResponse  "Upstream Timeout"
// @Router       /api/v1/orders [get]
func (h *Handler) GetOrders(c *gin.Context) { h.list(c, models.Orders) }

// GetSales godoc
// @Summary      List sales
// @Tags         resources
// @Produce      json
// @Param        dateFrom  query     string  true   "Start date" example(2024-01-01)
// @Param        dateTo    query     string  false  "End date" example(2024-01-31)
// @Param        limit     query     int     false  "Page size" default(50)
// @Param        page      query     int     false  "Page number" default(1)
// @Param        raw       query     bool    false  "Include the upstream body" default(true)
// @Success      200       {object}  dto.ListResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502       {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      504       {object}  dto.ErrorResponse  "Upstream Timeout"
// @Router       /api/v1/sales [get]
func (h *Handler) GetSales(c *gin.Context) { h.list(c, models.Sales) }

// GetIncomes godoc
// @Summary      List incomes
// @Tags         resources
// @Produce      json
// @Param        dateFrom  query     string  true   "Start date" example(2024-01-01)
// @Param        dateTo    query     string  false  "End date" example(2024-01-31)
// @Param        limit     query     int     false  "Page size" default(50)
// @Param        page      query     int     false  "Page number" default(1)
// @Param        raw       query     bool    false  "Include the upstream body" default(true)
// @Success      200       {object}  dto.ListResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502       {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      504       {object}  dto.ErrorResponse  "Upstream Timeout"
// @Router       /api/v1/incomes [get]
func (h *Handler) GetIncomes(c *gin.Context) { h.list(c, models.Incomes) }

// GetStocks godoc
// @Summary      List stocks
// @Description  Stocks are a snapshot: dateTo is ignored and dateFrom defaults to today (UTC)
// @Tags         resources
// @Produce      json
// @Param        dateFrom  query     string  false  "Snapshot date" example(2024-01-01)
// @Param        limit     query     int     false  "Page size" default(50)
// @Param        page      query     int     false  "Page number" default(1)
// @Param        raw       query     bool    false  "Include the upstream body" default(true)
// @Success      200       {object}  dto.ListResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502       {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      504       {object}  dto.ErrorResponse  "Upstream Timeout"
// @Router       /api/v1/stocks [get]
func (h *Handler) GetStocks(c *gin.Context) { h.list(c, models.Stocks) }

func (h *Handler) list(c *gin.Context, r models.Resource) {
	f, err := h.parseFilter(c, []models.Resource{r})
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}
	withRaw, err := parseBool(c, "raw", true)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}

	res, err := h.feed.List(c.Request.Context(), r, f)
	if err != nil {
		abortUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(r, res, withRaw))
}

// GetOverview godoc
// @Summary      Dashboard overview
// @Description  Fetches all four resources concurrently and returns the size of each list
// @Tags         resources
// @Produce      json
// @Param        dateFrom  query     string  true   "Start date" example(2024-01-01)
// @Param        dateTo    query     string  false  "End date" example(2024-01-31)
// @Param        limit     query     int     false  "Page size" default(50)
// @Param        page      query     int     false  "Page number" default(1)
// @Success      200       {object}  dto.OverviewResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502       {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      504       {object}  dto.ErrorResponse  "Upstream Timeout"
// @Router       /api/v1/overview [get]
func (h *Handler) GetOverview(c *gin.Context) {
	f, err := h.parseFilter(c, models.AllResources)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}

	ov, err := h.feed.Overview(c.Request.Context(), f)
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOverviewResponse(ov))
}

// PostSync godoc
// @Summary      Archive resources
// @Description  Fetches one page of each resource and stores its records in Postgres. Pages already archived are skipped unless force=true.
// @Tags         archive
// @Produce      json
// @Param        resources  query     string  false  "Comma-separated resources (default all)" example(orders,sales)
// @Param        dateFrom   query     string  false  "Start date (required unless only stocks are synced)" example(2024-01-01)
// @Param        dateTo     query     string  false  "End date" example(2024-01-31)
// @Param        limit      query     int     false  "Page size" default(50)
// @Param        page       query     int     false  "Page number" default(1)
// @Param        force      query     bool    false  "Re-sync archived pages" default(false)
// @Success      200        {array}   models.SyncReport
// @Failure      400        {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502        {object}  dto.ErrorResponse  "Upstream Error"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Failure      503        {object}  dto.ErrorResponse  "Archive Disabled"
// @Router       /api/v1/sync [post]
func (h *Handler) PostSync(c *gin.Context) {
	if h.sync == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "archive is not configured", nil)
		return
	}

	resources, err := models.ParseResources(c.Query("resources"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}
	f, err := h.parseFilter(c, resources)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}
	force, err := parseBool(c, "force", false)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}

	reports, err := h.sync.Sync(c.Request.Context(), resources, f, force)
	if err != nil {
		abortUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetSyncLog godoc
// @Summary      Sync history
// @Description  Returns the most recent sync log entries, newest first
// @Tags         archive
// @Produce      json
// @Param        resource  query     string  false  "Filter by resource" example(orders)
// @Param        limit     query     int     false  "Max entries" default(50)
// @Success      200       {array}   models.SyncEntry
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500       {object}  dto.ErrorResponse  "Internal Error"
// @Failure      503       {object}  dto.ErrorResponse  "Archive Disabled"
// @Router       /api/v1/sync/log [get]
func (h *Handler) GetSyncLog(c *gin.Context) {
	if h.sync == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "archive is not configured", nil)
		return
	}

	var r models.Resource
	if s := c.Query("resource"); s != "" {
		parsed, err := models.ParseResource(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
			return
		}
		r = parsed
	}
	limit, err := parseInt(c, "limit")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}

	entries, err := h.sync.History(c.Request.Context(), r, limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to read sync log", err)
		return
	}
	if entries == nil {
		entries = []models.SyncEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// parseFilter reads dateFrom, dateTo, limit and page. When snapshot is set a
// missing dateFrom defaults to today (UTC); otherwise it is required.
func (h *Handler) parseFilter(c *gin.Context, rs []models.Resource) (models.QueryFilter, error) {
	f := models.QueryFilter{
		DateFrom: strings.TrimSpace(c.Query("dateFrom")),
		DateTo:   strings.TrimSpace(c.Query("dateTo")),
	}
	f, err := f.ResolveDateFrom(rs, h.now())
	if err != nil {
		return f, err
	}

	if f.Limit, err = parseInt(c, "limit"); err != nil {
		return f, err
	}
	if f.Page, err = parseInt(c, "page"); err != nil {
		return f, err
	}
	return f, nil
}

// parseInt reads an optional non-negative integer; absent gives 0.
func parseInt(c *gin.Context, name string) (int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, s)
	}
	return n, nil
}

func parseBool(c *gin.Context, name string, def bool) (bool, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def, fmt.Errorf("%s must be a boolean, got %q", name, s)
	}
	return b, nil
}

// abortUpstream maps a service error to a status code:
//   - upstream non-2xx            -> 502
//   - oversized upstream body     -> 502
//   - timeout / deadline exceeded -> 504
//   - other transport failure     -> 502
//   - anything else               -> 500
func abortUpstream(c *gin.Context, err error) {
	var se *client.StatusError
	var ue *url.Error
	switch {
	case errors.As(err, &se):
		middleware.AbortWithError(c, http.StatusBadGateway, "upstream request failed", err)
	case errors.Is(err, client.ErrBodyTooLarge):
		middleware.AbortWithError(c, http.StatusBadGateway, "upstream response too large", err)
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "upstream request timed out", err)
	case errors.As(err, &ue):
		middleware.AbortWithError(c, http.StatusBadGateway, "upstream unreachable", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal error", err)
	}
}
