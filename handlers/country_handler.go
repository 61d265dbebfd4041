// handlers/country_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gewnthar/countries/external"
	"github.com/gewnthar/countries/models"
)

// Refresher runs a full refresh cycle.
type Refresher interface {
	Refresh() (*models.RefreshResponse, error)
}

// CountryReader is the slice of the country store the read endpoints need.
type CountryReader interface {
	List(region, currency, sort string) ([]models.Country, error)
	GetByName(name string) (*models.Country, error)
	DeleteByName(name string) error
}

// ImageSource locates the cached summary image.
type ImageSource interface {
	Exists() bool
	Path() string
}

// CountryHandler wires the /countries endpoints. It only parses requests
// and shapes responses; all work happens in the service and store layers.
type CountryHandler struct {
	refresher Refresher
	store     CountryReader
	images    ImageSource
}

func NewCountryHandler(refresher Refresher, store CountryReader, images ImageSource) *CountryHandler {
	return &CountryHandler{refresher: refresher, store: store, images: images}
}

// Register mounts the country routes on the router.
func (h *CountryHandler) Register(router *gin.Engine) {
	router.POST("/countries/refresh", h.Refresh)
	router.GET("/countries", h.List)
	router.GET("/countries/image", h.Image)
	router.GET("/countries/:name", h.Get)
	router.DELETE("/countries/:name", h.Delete)
}

// Refresh handles POST /countries/refresh.
func (h *CountryHandler) Refresh(c *gin.Context) {
	resp, err := h.refresher.Refresh()
	if err != nil {
		var apiErr *external.APIError
		if errors.As(err, &apiErr) {
			respondWithError(c, http.StatusServiceUnavailable,
				"External data source unavailable",
				fmt.Sprintf("Could not fetch data from %s", apiErr.Source))
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /countries with optional region, currency and sort.
func (h *CountryHandler) List(c *gin.Context) {
	countries, err := h.store.List(c.Query("region"), c.Query("currency"), c.Query("sort"))
	if err != nil {
		var valErr models.ErrValidation
		if errors.As(err, &valErr) {
			respondWithError(c, http.StatusBadRequest, "Validation failed", valErr.Error())
			return
		}
		respondInternalError(c, err)
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	c.JSON(http.StatusOK, countries)
}

// Get handles GET /countries/:name (case-insensitive).
func (h *CountryHandler) Get(c *gin.Context) {
	country, err := h.store.GetByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, models.ErrCountryNotFound) {
			respondWithError(c, http.StatusNotFound, "Country not found", "")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// Delete handles DELETE /countries/:name (case-insensitive).
func (h *CountryHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.store.DeleteByName(name); err != nil {
		if errors.Is(err, models.ErrCountryNotFound) {
			respondWithError(c, http.StatusNotFound, "Country not found", "")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Country %q deleted successfully", name)})
}

// Image handles GET /countries/image. The image is never generated on
// demand; a refresh must have produced one.
func (h *CountryHandler) Image(c *gin.Context) {
	if !h.images.Exists() {
		respondWithError(c, http.StatusNotFound, "Summary image not found", "")
		return
	}
	c.Header("Content-Type", "image/png")
	c.File(h.images.Path())
}

func respondWithError(c *gin.Context, code int, message, details string) {
	log.Printf("Handler: API error %d: %s (%s)", code, message, details)
	c.JSON(code, models.ErrorResponse{Error: message, Details: details})
}

func respondInternalError(c *gin.Context, err error) {
	respondWithError(c, http.StatusInternalServerError, "Internal server error", err.Error())
}
