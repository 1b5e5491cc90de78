package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/store"
)

type fileReportRequest struct {
	AssetID     string `json:"assetId"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	PhotoURL    string `json:"photoUrl"`
}

type setPriorityRequest struct {
	Priority string `json:"priority"`
}

type advanceStatusRequest struct {
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
}

// FileReport handles POST /api/reports.
func (h *Handler) FileReport(c *gin.Context) {
	reporter, ok := caller(c)
	if !ok {
		return
	}
	var req fileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.store.FileReport(c.Request.Context(), reporter, store.FileReportRequest{
		AssetID:     req.AssetID,
		Description: req.Description,
		Priority:    domain.ReportPriority(req.Priority),
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// SetReportPriority handles PUT /api/reports/:id/priority.
func (h *Handler) SetReportPriority(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	var req setPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.store.SetReportPriority(c.Request.Context(), c.Param("id"), actor, domain.ReportPriority(req.Priority))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AdvanceReportStatus handles PUT /api/reports/:id/status.
func (h *Handler) AdvanceReportStatus(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.store.AdvanceReportStatus(c.Request.Context(), c.Param("id"), actor, domain.ReportStatus(req.Status), req.AssignedTo)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListReports handles GET /api/reports.
func (h *Handler) ListReports(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	f := store.ReportFilter{
		AssetID:  c.Query("asset_id"),
		Category: domain.AssetCategory(c.Query("category")),
		Priority: domain.ReportPriority(c.Query("priority")),
		Status:   domain.ReportStatus(c.Query("status")),
	}
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		f.To = &t
	}

	reports, err := h.store.ListReports(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	if !domain.CanViewStats(actor.Role) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	stats, err := h.store.Stats(c.Request.Context(), store.StatsFilter{})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
