package handler

import (
	"net/http"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc       service.CatalogService
	inventory service.InventoryService
}

func NewCatalogHandler(svc service.CatalogService, inventory service.InventoryService) *CatalogHandler {
	return &CatalogHandler{svc: svc, inventory: inventory}
}

// Create godoc
// @Summary      Create a catalog item
// @Description  Creates a service (requires duration_min) or a product (may carry initial stock).
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateCatalogItemRequest true "Item"
// @Success      201  {object} dto.CatalogItemResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/catalog [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateCatalogItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a catalog item
// @Description  Updates name, price, duration, reorder threshold and active flag. Stock is never edited here; use the inventory adjustment endpoint.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Item UUID"
// @Param        body body dto.UpdateCatalogItemRequest true "New values"
// @Success      200  {object} dto.CatalogItemResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/catalog/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCatalogItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List catalog items
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        kind   query string false "service | product"
// @Param        name   query string false "Substring match"
// @Param        active query string false "false | all (default: active only)"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200    {object} dto.CatalogListResponse
// @Router       /v1/catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var filter dto.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary      Adjust product stock
// @Description  Applies a signed delta (restock or manual write-off) and records a stock movement with the given reason. Rejected when it would push stock below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Product UUID"
// @Param        body body dto.AdjustStockRequest true "Delta and reason"
// @Success      200  {object} dto.CatalogItemResponse
// @Failure      409  {object} apierror.APIError "would go negative"
// @Router       /v1/catalog/{id}/stock [patch]
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.inventory.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockAlerts godoc
// @Summary      Products at or below their reorder threshold
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StockAlertResponse
// @Router       /v1/inventory/alerts [get]
func (h *CatalogHandler) StockAlerts(c *gin.Context) {
	resp, err := h.inventory.LowStockAlerts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
