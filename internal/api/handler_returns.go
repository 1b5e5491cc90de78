package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/store"
)

type processReturnRequest struct {
	Items map[string]struct {
		Returned  bool   `json:"returned"`
		Condition string `json:"condition"`
	} `json:"items"`
	Notes string `json:"notes"`
}

// OpenReturn handles GET /api/loans/:id/return and serves the
// checklist the return desk ticks off.
func (h *Handler) OpenReturn(c *gin.Context) {
	approver, ok := caller(c)
	if !ok {
		return
	}
	loan, checklist, err := h.store.OpenReturn(c.Request.Context(), c.Param("id"), approver)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loan":  newLoanResponse(loan, time.Now()),
		"items": checklist,
	})
}

// ProcessReturn handles POST /api/loans/:id/return.
func (h *Handler) ProcessReturn(c *gin.Context) {
	approver, ok := caller(c)
	if !ok {
		return
	}
	var req processReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pr := store.ProcessReturnRequest{
		Dispositions: make(map[string]store.Disposition, len(req.Items)),
		Notes:        req.Notes,
	}
	for assetID, item := range req.Items {
		pr.Dispositions[assetID] = store.Disposition{
			Returned:  item.Returned,
			Condition: domain.AssetCondition(item.Condition),
		}
	}

	loan, err := h.store.ProcessReturn(c.Request.Context(), c.Param("id"), approver, pr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLoanResponse(loan, time.Now()))
}
