package handler

import (
	"net/http"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingsHandler struct{ svc service.BookingService }

func NewBookingsHandler(svc service.BookingService) *BookingsHandler {
	return &BookingsHandler{svc: svc}
}

// Create godoc
// @Summary      Book an appointment
// @Description  Creates the appointment and its comanda atomically: conflict check, client resolution (by id or new name+phone) and the initial service line all happen in one transaction.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateBookingRequest true "Booking details"
// @Success      201  {object} dto.BookingResponse
// @Failure      409  {object} apierror.APIError "staff already booked in that window"
// @Failure      422  {object} apierror.APIError
// @Router       /v1/bookings [post]
func (h *BookingsHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Agenda ───────────────────────────────────────────────────────────────────

type AgendaHandler struct{ svc service.AgendaService }

func NewAgendaHandler(svc service.AgendaService) *AgendaHandler {
	return &AgendaHandler{svc: svc}
}

// ListDay godoc
// @Summary      Day agenda
// @Description  Returns all appointments for a date, ordered by start time.
// @Tags         agenda
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Date YYYY-MM-DD"
// @Success      200  {array}  dto.AppointmentResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/agenda [get]
func (h *AgendaHandler) ListDay(c *gin.Context) {
	var filter dto.AgendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("date must be YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.ListDay(c.Request.Context(), filter.Date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Grid godoc
// @Summary      Day agenda as grid placements
// @Description  Returns per-appointment column and percentage offsets for the time-grid view. Cached per date for 60s.
// @Tags         agenda
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Date YYYY-MM-DD"
// @Success      200  {array}  timegrid.Placement
// @Failure      422  {object} apierror.APIError
// @Router       /v1/agenda/grid [get]
func (h *AgendaHandler) Grid(c *gin.Context) {
	var filter dto.AgendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("date must be YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.Grid(c.Request.Context(), filter.Date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
