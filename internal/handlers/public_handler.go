package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookingdomain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
	"github.com/barberflowapp/barberflow-api/internal/timezone"
	bookinguc "github.com/barberflowapp/barberflow-api/internal/usecase/booking"
)

// PublicHandler expõe o fluxo de agendamento sem autenticação: catálogo,
// disponibilidade e criação do agendamento.
type PublicHandler struct {
	db                *gorm.DB
	getAvailability   *bookinguc.GetAvailability
	monthAvailability *bookinguc.MonthAvailability
	createBooking     *bookinguc.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	getAvailability *bookinguc.GetAvailability,
	monthAvailability *bookinguc.MonthAvailability,
	createBooking *bookinguc.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:                db,
		getAvailability:   getAvailability,
		monthAvailability: monthAvailability,
		createBooking:     createBooking,
	}
}

// --------- Catálogo ---------

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Não foi possível listar os barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Where("active = ?", true).Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Não foi possível listar os serviços.")
		return
	}
	httpresp.List(c, services)
}

// --------- Disponibilidade ---------

// GET /public/availability?barber_id=1&date=2026-08-31&service_ids=1,4
func (h *PublicHandler) GetDayAvailability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id inválido.")
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use o formato YYYY-MM-DD.")
		return
	}

	slots, err := h.getAvailability.Execute(c.Request.Context(), bookinguc.AvailabilityInput{
		BarberID:   uint(barberID),
		ServiceIDs: bookingdomain.ParseIDList(c.Query("service_ids")),
		Date:       date,
		Now:        timezone.Now(),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}

// GET /public/availability/month?barber_id=1&year=2026&month=9&service_ids=1
func (h *PublicHandler) GetMonthAvailability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id inválido.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido (1-12).")
		return
	}

	days, err := h.monthAvailability.Execute(c.Request.Context(), bookinguc.MonthAvailabilityInput{
		BarberID:   uint(barberID),
		ServiceIDs: bookingdomain.ParseIDList(c.Query("service_ids")),
		Year:       year,
		Month:      time.Month(month),
		Now:        timezone.Now(),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// --------- Criação ---------

type CreateBookingRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Notes       string `json:"notes"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.createBooking.Execute(c.Request.Context(), bookinguc.CreateBookingInput{
		BarberID:    req.BarberID,
		ServiceIDs:  req.ServiceIDs,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":      b,
		"calendar_url": "/public/bookings/" + b.Reference + "/calendar.ics",
	})
}

// --------- iCalendar ---------

// GET /public/bookings/:reference/calendar.ics
func (h *PublicHandler) DownloadICS(c *gin.Context) {
	reference := c.Param("reference")

	var b models.Booking
	if err := h.db.Where("reference = ?", reference).First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, b.BarberID).Error; err != nil {
		httperr.Internal(c, "barber_not_found", "Barbeiro do agendamento não encontrado.")
		return
	}

	var services []models.Service
	if ids := bookingdomain.ParseIDList(b.ServiceIDs); len(ids) > 0 {
		h.db.Where("id IN ?", []uint(ids)).Find(&services)
	}

	body := bookingdomain.ICS(&b, &barber, services)

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="agendamento.ics"`)
	c.String(http.StatusOK, body)
}

// writeBookingError mapeia os erros de negócio do agendamento para o
// status HTTP adequado.
func writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case "slot_conflict":
		httperr.Conflict(c, code, "Esse horário acabou de ser preenchido. Escolha outro.")
	case "barber_not_found", "service_not_found", "booking_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	default:
		httperr.BadRequest(c, code, "Requisição inválida.")
	}
}
