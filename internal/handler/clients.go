package handler

import (
	"net/http"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientsHandler struct {
	clients service.ClientService
	staff   service.StaffService
}

func NewClientsHandler(clients service.ClientService, staff service.StaffService) *ClientsHandler {
	return &ClientsHandler{clients: clients, staff: staff}
}

// Create godoc
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateClientRequest true "Client details"
// @Success      201  {object} dto.ClientResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/clients [post]
func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.clients.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        name  query string false "Name substring"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} map[string]interface{}
// @Router       /v1/clients [get]
func (h *ClientsHandler) List(c *gin.Context) {
	var filter dto.ClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, total, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// ListStaff godoc
// @Summary      List active staff
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StaffResponse
// @Router       /v1/staff [get]
func (h *ClientsHandler) ListStaff(c *gin.Context) {
	resp, err := h.staff.ListActive(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
