package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

type ExpenseHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewExpenseHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ExpenseHandler {
	return &ExpenseHandler{db: db, audit: auditDispatcher}
}

type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

func (h *ExpenseHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_expenses", "Não foi possível listar as despesas.")
		return
	}

	httpresp.List(c, expenses)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Amount.Sign() <= 0 {
		httperr.BadRequest(c, "invalid_amount", "O valor deve ser positivo.")
		return
	}

	expense := models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	}

	if err := h.db.Create(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_create_expense", "Não foi possível registrar a despesa.")
		return
	}

	h.dispatch(c, "expense_created", expense.ID)
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Amount.Sign() <= 0 {
		httperr.BadRequest(c, "invalid_amount", "O valor deve ser positivo.")
		return
	}

	var expense models.Expense
	if err := h.db.First(&expense, id).Error; err != nil {
		httperr.NotFound(c, "expense_not_found", "Despesa não encontrada.")
		return
	}

	expense.Description = req.Description
	expense.Category = req.Category
	expense.Amount = req.Amount

	if err := h.db.Save(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_update_expense", "Não foi possível atualizar a despesa.")
		return
	}

	h.dispatch(c, "expense_updated", expense.ID)
	httpresp.OK(c, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.db.Delete(&models.Expense{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_expense", "Não foi possível remover a despesa.")
		return
	}

	h.dispatch(c, "expense_deleted", uint(id))
	c.Status(http.StatusNoContent)
}

func (h *ExpenseHandler) dispatch(c *gin.Context, action string, entityID uint) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "expense",
		EntityID: &entityID,
	})
}
