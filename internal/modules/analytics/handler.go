package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopcart/internal/domain"
	"shopcart/internal/middleware"
	"shopcart/internal/pkg/response"
)

// Handler serves brand/product/site analytics. Access control lives entirely
// in the middleware chain; handlers only fetch aggregates.
type Handler struct {
	stats     StatsReader
	ownership *middleware.OwnershipChecker
}

func NewHandler(stats StatsReader, ownership *middleware.OwnershipChecker) *Handler {
	return &Handler{stats: stats, ownership: ownership}
}

// RegisterRoutes wires the analytics endpoints into an authenticated group.
// Each route declares its entity-resolution scope once, here.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/analytics")
	{
		group.GET("/brands/:id", h.ownership.RequireOwnership(middleware.BrandScoped), h.BrandReport)
		group.GET("/products/:id", h.ownership.RequireOwnership(middleware.ProductScoped), h.ProductReport)
		group.GET("/reports", h.ownership.RequireOwnership(middleware.ReportScoped), h.GenericReport)
		group.GET("/dashboard", middleware.AdminOnly(), h.Dashboard)
	}
}

func (h *Handler) BrandReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid brand ID")
		return
	}

	stats, err := h.stats.BrandStats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load brand report")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ProductReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	stats, err := h.stats.ProductStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load product report")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// GenericReport dispatches on the same entityType/entityId parameters the
// ownership middleware already validated.
func (h *Handler) GenericReport(c *gin.Context) {
	entityType := c.Query("entityType")
	entityID, _ := strconv.ParseInt(c.Query("entityId"), 10, 64)

	var (
		data any
		err  error
	)
	switch entityType {
	case "site":
		data, err = h.stats.SiteStats(c.Request.Context())
	case "brand":
		data, err = h.stats.BrandStats(c.Request.Context(), entityID)
	case "product":
		data, err = h.stats.ProductStats(c.Request.Context(), entityID)
	default:
		response.Error(c, http.StatusBadRequest, "Unknown entity type")
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Entity not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load report")
		return
	}

	response.Success(c, http.StatusOK, data)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.stats.SiteStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
