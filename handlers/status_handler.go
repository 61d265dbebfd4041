// handlers/status_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gewnthar/countries/config"
	"github.com/gewnthar/countries/models"
)

// StatusReader is the slice of the country store the status endpoint needs.
type StatusReader interface {
	Count() (int64, error)
	LastRefreshedAt() (*time.Time, error)
}

// StatusHandler serves GET /status and GET /health.
type StatusHandler struct {
	store StatusReader
}

func NewStatusHandler(store StatusReader) *StatusHandler {
	return &StatusHandler{store: store}
}

// Register mounts the status routes on the router.
func (h *StatusHandler) Register(router *gin.Engine) {
	router.GET("/status", h.Status)
	router.GET("/health", h.Health)
}

// Status handles GET /status: row count plus the most recent refresh
// timestamp, null before the first refresh.
func (h *StatusHandler) Status(c *gin.Context) {
	total, err := h.store.Count()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	lastRefreshed, err := h.store.LastRefreshedAt()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{
		TotalCountries:  total,
		LastRefreshedAt: lastRefreshed,
	})
}

// Health handles GET /health.
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Name:        config.AppName,
		Version:     config.AppVersion,
		Description: config.AppDescription,
	})
}
