package handler

import (
	"net/http"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComandasHandler struct {
	svc        service.ComandaService
	settlement service.SettlementService
}

func NewComandasHandler(svc service.ComandaService, settlement service.SettlementService) *ComandasHandler {
	return &ComandasHandler{svc: svc, settlement: settlement}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// Open godoc
// @Summary      Open a walk-in comanda
// @Description  Opens an empty comanda with no appointment. Origin is tagged walk_in.
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenComandaRequest true "Client and optional default staff"
// @Success      201  {object} dto.ComandaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/comandas [post]
func (h *ComandasHandler) Open(c *gin.Context) {
	var req dto.OpenComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Fetch a comanda with its items
// @Tags         comandas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comanda UUID"
// @Success      200 {object} dto.ComandaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/comandas/{id} [get]
func (h *ComandasHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List comandas
// @Description  Paginated list filtered by date and status (default: today's open tabs).
// @Tags         comandas
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "Date YYYY-MM-DD (default: today)"
// @Param        status query string false "open | paid | cancelled | all"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200    {object} dto.ComandaListResponse
// @Router       /v1/comandas [get]
func (h *ComandasHandler) List(c *gin.Context) {
	var filter dto.ComandaFilter
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

// AddItem godoc
// @Summary      Add a line item
// @Description  Adds a catalog item to an open comanda; unit price and name are snapshotted at add time and totals recomputed in the same transaction.
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "Comanda UUID"
// @Param        body body dto.AddItemRequest true "Item to add"
// @Success      200  {object} dto.ComandaResponse
// @Failure      409  {object} apierror.APIError "comanda is not open"
// @Router       /v1/comandas/{id}/items [post]
func (h *ComandasHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem godoc
// @Summary      Remove a line item
// @Tags         comandas
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Comanda UUID"
// @Param        itemId path string true "Item UUID"
// @Success      200    {object} dto.ComandaResponse
// @Failure      409    {object} apierror.APIError "comanda is not open"
// @Router       /v1/comandas/{id}/items/{itemId} [delete]
func (h *ComandasHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetDiscount godoc
// @Summary      Set the comanda discount
// @Description  Replaces the flat discount amount. The total never drops below zero.
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Comanda UUID"
// @Param        body body dto.SetDiscountRequest true "Discount amount"
// @Success      200  {object} dto.ComandaResponse
// @Failure      409  {object} apierror.APIError "comanda is not open"
// @Router       /v1/comandas/{id}/discount [patch]
func (h *ComandasHandler) SetDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SetDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetDiscount(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReassignResponsible godoc
// @Summary      Reassign the staff responsible for a line item
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string                         true "Comanda UUID"
// @Param        itemId path string                         true "Item UUID"
// @Param        body   body dto.ReassignResponsibleRequest true "New responsible staff"
// @Success      200    {object} dto.ComandaResponse
// @Failure      409    {object} apierror.APIError "comanda is not open"
// @Router       /v1/comandas/{id}/items/{itemId}/responsible [patch]
func (h *ComandasHandler) ReassignResponsible(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req dto.ReassignResponsibleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid staff_id"))
		return
	}
	resp, err := h.svc.ReassignResponsible(c.Request.Context(), id, itemID, staffID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Settle godoc
// @Summary      Settle a comanda
// @Description  Closes the tab in one ACID transaction: final item set persisted, product stock decremented with movement records, status flipped open→paid, client spend updated, linked appointment completed. The income ledger entry is posted right after; if the posting fails the response is dependency_failure with the comanda id.
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "Comanda UUID"
// @Param        body body dto.SettleRequest true "Payment method"
// @Success      200  {object} dto.SettleResponse
// @Failure      409  {object} apierror.APIError "not open, already settled, or insufficient stock"
// @Failure      502  {object} apierror.APIError "settled but ledger posting failed"
// @Router       /v1/comandas/{id}/settle [post]
func (h *ComandasHandler) Settle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SettleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.settlement.Settle(c.Request.Context(), id, req.PaymentMethod)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel a comanda
// @Description  Terminal non-revenue close: no stock movement, no ledger entry. Cancels the linked appointment when present.
// @Tags         comandas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comanda UUID"
// @Success      200 {object} dto.ComandaResponse
// @Failure      409 {object} apierror.APIError "comanda is not open"
// @Router       /v1/comandas/{id}/cancel [post]
func (h *ComandasHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.settlement.Cancel(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTransactions godoc
// @Summary      List ledger entries
// @Description  Returns the day's immutable income/expense entries.
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Param        type query string false "income | expense | all"
// @Success      200  {array} dto.TransactionResponse
// @Router       /v1/transactions [get]
func (h *ComandasHandler) ListTransactions(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.settlement.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
