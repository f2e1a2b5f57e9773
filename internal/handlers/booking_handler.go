package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/middleware"
	"github.com/barberflowapp/barberflow-api/internal/models"
	bookinguc "github.com/barberflowapp/barberflow-api/internal/usecase/booking"
)

// BookingHandler é a agenda do back-office: lista tudo do dia (inclusive
// cancelados), confirma, cancela e remove.
type BookingHandler struct {
	db            *gorm.DB
	setStatus     *bookinguc.SetStatus
	deleteBooking *bookinguc.DeleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	setStatus *bookinguc.SetStatus,
	deleteBooking *bookinguc.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:            db,
		setStatus:     setStatus,
		deleteBooking: deleteBooking,
	}
}

// GET /api/bookings?date=2026-08-31&barber_id=1
func (h *BookingHandler) List(c *gin.Context) {
	query := h.db.Preload("Barber").Order("date ASC, start_time ASC")

	if date := c.Query("date"); date != "" {
		if _, err := parseDate(date); err != nil {
			httperr.BadRequest(c, "invalid_date", "Use o formato YYYY-MM-DD.")
			return
		}
		query = query.Where("date = ?", date)
	}

	if barberID := c.Query("barber_id"); barberID != "" {
		query = query.Where("barber_id = ?", barberID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Não foi possível listar os agendamentos.")
		return
	}

	httpresp.List(c, bookings)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/bookings/:id/status
func (h *BookingHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.setStatus.Execute(c.Request.Context(), bookinguc.SetStatusInput{
		BookingID: uint(id),
		UserID:    currentUserID(c),
		Status:    req.Status,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// DELETE /api/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.deleteBooking.Execute(c.Request.Context(), uint(id), currentUserID(c)); err != nil {
		writeBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
