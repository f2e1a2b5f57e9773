package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	bookingdomain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, audit: auditDispatcher}
}

func (h *BarberHandler) dispatch(c *gin.Context, action string, entityID uint) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "barber",
		EntityID: &entityID,
	})
}

// --------- CRUD ---------

type BarberRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Preload("Schedules").Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Não foi possível listar os barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	barber := models.Barber{Name: req.Name}
	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Não foi possível criar o barbeiro.")
		return
	}

	h.dispatch(c, "barber_created", barber.ID)
	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	barber.Name = req.Name
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Não foi possível atualizar o barbeiro.")
		return
	}

	h.dispatch(c, "barber_updated", barber.ID)
	httpresp.OK(c, barber)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	// O cascade leva os horários junto.
	if err := h.db.Select("Schedules").Delete(&models.Barber{ID: uint(id)}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Não foi possível remover o barbeiro.")
		return
	}

	h.dispatch(c, "barber_deleted", uint(id))
	c.Status(http.StatusNoContent)
}

// --------- Expediente semanal ---------

type ScheduleEntry struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
}

type ReplaceScheduleRequest struct {
	Schedules []ScheduleEntry `json:"schedules" binding:"required"`
}

func (h *BarberHandler) GetSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var schedules []models.BarberSchedule
	if err := h.db.
		Where("barber_id = ?", id).
		Order("weekday ASC").
		Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Não foi possível carregar o expediente.")
		return
	}

	httpresp.List(c, schedules)
}

// ReplaceSchedule troca o expediente inteiro do barbeiro: apaga as
// linhas atuais e insere o que veio no corpo. Linhas inativas só
// precisam do weekday; linhas ativas exigem início antes do fim.
func (h *BarberHandler) ReplaceSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var req ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := make(map[int]bool)
	for _, entry := range req.Schedules {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			httperr.BadRequest(c, "invalid_schedule", "weekday deve estar entre 0 (domingo) e 6 (sábado).")
			return
		}
		if seen[entry.Weekday] {
			httperr.BadRequest(c, "invalid_schedule", "weekday repetido no expediente.")
			return
		}
		seen[entry.Weekday] = true

		if entry.Active && !bookingdomain.ValidWindow(entry.StartTime, entry.EndTime) {
			httperr.BadRequest(c, "invalid_schedule", "Horário ativo exige início antes do fim (HH:mm).")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", id).Delete(&models.BarberSchedule{}).Error; err != nil {
			return err
		}

		for _, entry := range req.Schedules {
			sch := models.BarberSchedule{
				BarberID:  uint(id),
				Weekday:   entry.Weekday,
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				Active:    entry.Active,
			}
			if err := tx.Create(&sch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Não foi possível salvar o expediente.")
		return
	}

	h.dispatch(c, "schedule_replaced", uint(id))
	h.GetSchedule(c)
}
