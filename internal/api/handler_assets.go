package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/store"
)

type createAssetRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	TotalStock  int    `json:"totalStock"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
}

type updateAssetRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	TotalStock  *int    `json:"totalStock"`
	Condition   *string `json:"condition"`
	Description *string `json:"description"`
}

// CreateAsset handles POST /api/assets.
func (h *Handler) CreateAsset(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	asset, err := h.store.CreateAsset(c.Request.Context(), actor, store.CreateAssetRequest{
		Name:        req.Name,
		Category:    domain.AssetCategory(req.Category),
		Location:    req.Location,
		TotalStock:  req.TotalStock,
		Condition:   domain.AssetCondition(req.Condition),
		Description: req.Description,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// UpdateAsset handles PUT /api/assets/:id.
func (h *Handler) UpdateAsset(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := store.AssetUpdate{
		Name:        req.Name,
		Location:    req.Location,
		TotalStock:  req.TotalStock,
		Description: req.Description,
	}
	if req.Condition != nil {
		cond := domain.AssetCondition(*req.Condition)
		upd.Condition = &cond
	}

	asset, err := h.store.UpdateAsset(c.Request.Context(), actor, c.Param("id"), upd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles DELETE /api/assets/:id.
func (h *Handler) DeleteAsset(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAsset(c.Request.Context(), actor, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAsset handles GET /api/assets/:id.
func (h *Handler) GetAsset(c *gin.Context) {
	asset, err := h.store.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// ListAssets handles GET /api/assets.
func (h *Handler) ListAssets(c *gin.Context) {
	assets, err := h.store.ListAssets(c.Request.Context(), store.AssetFilter{
		Category: domain.AssetCategory(c.Query("category")),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}
