package api

import (
	"net/http"
	"optmonitor/internal/models"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// Refresher accepts manual refresh requests.
type Refresher interface {
	Trigger()
}

type Handler struct {
	data      atomic.Pointer[models.DashboardData]
	refresher Refresher
}

// NewHandler serves data (which may be nil until the first refresh) and
// forwards POST /api/refresh to refresher (which may be nil).
func NewHandler(data *models.DashboardData, refresher Refresher) *Handler {
	h := &Handler{refresher: refresher}
	h.data.Store(data)
	return h
}

// SetRefresher must be called before the server starts.
func (h *Handler) SetRefresher(r Refresher) {
	h.refresher = r
}

// SetData publishes a new snapshot. Safe for concurrent use.
func (h *Handler) SetData(data *models.DashboardData) {
	h.data.Store(data)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/dashboard", h.GetDashboard, h.requireData)
	api.GET("/progress", h.GetProgress, h.requireData)
	api.GET("/best", h.GetBestCase, h.requireData)
	api.GET("/objective/history", h.GetObjectiveHistory, h.requireData)
	api.GET("/files", h.GetFiles, h.requireData)
	api.POST("/refresh", h.PostRefresh)
}

// requireData answers 503 until the first snapshot has been published.
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.data.Load() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "log data is still loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Load())
}

func (h *Handler) GetProgress(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Load().Progress)
}

func (h *Handler) GetBestCase(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Load().Best)
}

// objective function values, oldest first
func (h *Handler) GetObjectiveHistory(c echo.Context) error {
	history := h.data.Load().History
	total := len(history)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		offset = total
	}
	if limit > total-offset {
		limit = total - offset
	}
	end := offset + limit

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   history[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetFiles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Load().Files)
}

func (h *Handler) PostRefresh(c echo.Context) error {
	if h.refresher == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "refresh is not available")
	}
	h.refresher.Trigger()
	return c.NoContent(http.StatusAccepted)
}
