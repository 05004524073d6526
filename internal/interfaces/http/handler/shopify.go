package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/datawise/backend/internal/application/dashboard"
	"github.com/datawise/backend/internal/domain/commerce"
	"github.com/datawise/backend/internal/infrastructure/logger"
	"github.com/datawise/backend/internal/infrastructure/shopify"
	"github.com/datawise/backend/internal/interfaces/http/dto"
	"github.com/datawise/backend/internal/interfaces/http/middleware"
)

// DashboardService is the application surface the shopify endpoints need
type DashboardService interface {
	DashboardData(ctx context.Context, rng dashboard.DateRange, includeAnalytics bool) (*dashboard.Document, error)
	Report(ctx context.Context, kind string, rng dashboard.DateRange, extra url.Values) (map[string]any, error)
	AvailableReports(ctx context.Context) (json.RawMessage, error)
}

// ShopifyHandler serves the dashboard-facing shopify endpoints
type ShopifyHandler struct {
	BaseHandler
	service DashboardService
}

// NewShopifyHandler creates a new ShopifyHandler
func NewShopifyHandler(service DashboardService) *ShopifyHandler {
	return &ShopifyHandler{service: service}
}

// RegisterRoutes registers shopify routes
func (h *ShopifyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/shopify")
	{
		group.GET("/data", h.GetData)
		group.GET("/reports", h.GetAvailableReports)
		group.GET("/sales_analytics", h.GetSalesAnalytics)
		group.GET("/sessions", h.GetSessions)
		group.GET("/device_types", h.GetDeviceTypes)
		group.GET("/top_products", h.GetTopProducts)
		group.GET("/customer_cohorts", h.GetCustomerCohorts)
	}
}

// DateRangeRequest carries the optional calendar-date bounds shared by
// every endpoint
type DateRangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r DateRangeRequest) Range() dashboard.DateRange {
	return dashboard.DateRange{Start: r.StartDate, End: r.EndDate}
}

// DataRequest is the query contract of the combined data endpoint
type DataRequest struct {
	DateRangeRequest
	IncludeAnalytics *bool `form:"include_analytics"`
}

// SessionsRequest adds the grouping granularity
type SessionsRequest struct {
	DateRangeRequest
	GroupBy string `form:"group_by" binding:"omitempty,oneof=day week month"`
}

// TopProductsRequest adds the result cap
type TopProductsRequest struct {
	DateRangeRequest
	Limit int `form:"limit" binding:"omitempty,min=1,max=250"`
}

// GetData returns the full dashboard document: computed metrics, raw
// records and analytics reports. Aggregation failures still answer 200
// with an inline error envelope so the dashboard keeps rendering.
func (h *ShopifyHandler) GetData(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetGinLogger(c).Error("dashboard data panic",
				zap.Any("error", r))
			c.JSON(http.StatusOK, gin.H{
				"error": fmt.Sprint(r),
				"trace": fmt.Sprint(r) + "\n" + string(debug.Stack()),
			})
		}
	}()

	var req DataRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	includeAnalytics := true
	if req.IncludeAnalytics != nil {
		includeAnalytics = *req.IncludeAnalytics
	}

	doc, err := h.service.DashboardData(c.Request.Context(), req.Range(), includeAnalytics)
	if err != nil {
		logger.GetGinLogger(c).Error("dashboard data aggregation failed",
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"error": err.Error(),
			"trace": err.Error() + "\n" + string(debug.Stack()),
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetAvailableReports lists the analytics reports the shop exposes
func (h *ShopifyHandler) GetAvailableReports(c *gin.Context) {
	raw, err := h.service.AvailableReports(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetSalesAnalytics returns the detailed sales report
func (h *ShopifyHandler) GetSalesAnalytics(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.serveReport(c, "sales", req.Range(), nil)
}

// GetSessions returns the sessions report with optional grouping
func (h *ShopifyHandler) GetSessions(c *gin.Context) {
	var req SessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.GroupBy == "" {
		req.GroupBy = "day"
	}
	h.serveReport(c, "sessions", req.Range(), url.Values{"group_by": []string{req.GroupBy}})
}

// GetDeviceTypes returns session counts broken down by device type
func (h *ShopifyHandler) GetDeviceTypes(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.serveReport(c, "device_types", req.Range(), nil)
}

// GetTopProducts returns the best selling products
func (h *ShopifyHandler) GetTopProducts(c *gin.Context) {
	var req TopProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = 10
	}
	h.serveReport(c, "top_products", req.Range(), url.Values{"limit": []string{strconv.Itoa(req.Limit)}})
}

// GetCustomerCohorts returns the customer cohort analysis report
func (h *ShopifyHandler) GetCustomerCohorts(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.serveReport(c, "customer_cohorts", req.Range(), nil)
}

func (h *ShopifyHandler) serveReport(c *gin.Context, kind string, rng dashboard.DateRange, extra url.Values) {
	report, err := h.service.Report(c.Request.Context(), kind, rng, extra)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// upstreamError maps a platform failure to a response, forwarding the
// originating status code when the platform answered at all
func (h *ShopifyHandler) upstreamError(c *gin.Context, err error) {
	var apiErr *shopify.APIError
	if errors.As(err, &apiErr) {
		h.Error(c, apiErr.StatusCode, dto.ErrCodeUpstream, "Shopify API error: "+apiErr.Body)
		return
	}
	if errors.Is(err, commerce.ErrPlatformUnavailable) {
		h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, err.Error())
		return
	}
	h.InternalError(c, err.Error())
}
