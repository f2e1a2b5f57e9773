package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerdomain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
	ledgeruc "github.com/barberflowapp/barberflow-api/internal/usecase/ledger"
	saleuc "github.com/barberflowapp/barberflow-api/internal/usecase/sale"
)

type TransactionHandler struct {
	db      *gorm.DB
	sale    *saleuc.RecordSale
	reverse *ledgeruc.ReverseTransaction
	log     zerolog.Logger
}

func NewTransactionHandler(
	db *gorm.DB,
	sale *saleuc.RecordSale,
	reverse *ledgeruc.ReverseTransaction,
	log zerolog.Logger,
) *TransactionHandler {
	return &TransactionHandler{db: db, sale: sale, reverse: reverse, log: log}
}

// --------- Venda ---------

type SaleItemRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=product service"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name" binding:"required"`
	Qty       int             `json:"qty" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Barber    string          `json:"barber"`
}

type RecordSaleRequest struct {
	Items         []SaleItemRequest `json:"items" binding:"required"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	ClientName    string            `json:"client_name"`
	ClientPhone   string            `json:"client_phone"`
	BarberID      *uint             `json:"barber_id"`
}

// POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	items := make([]saleuc.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, saleuc.CartItem{
			Kind:      item.Kind,
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Barber:    item.Barber,
		})
	}

	userID := currentUserID(c)

	tx, err := h.sale.Execute(c.Request.Context(), saleuc.RecordSaleInput{
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		UserID:        &userID,
		BarberID:      req.BarberID,
	})
	if err != nil {
		writeLedgerError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// --------- Listagem ---------

// GET /api/transactions?from=2026-08-01&to=2026-08-31&status=pending&method=fiado
func (h *TransactionHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC")

	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("created_at < ?", to)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Não foi possível listar as transações.")
		return
	}

	httpresp.List(c, transactions)
}

// --------- Estorno ---------

// DELETE /api/transactions/:id desfaz a venda: estorna fiado,
// devolve estoque e apaga a transação.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.reverse.Execute(c.Request.Context(), uint(id)); err != nil {
		writeLedgerError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeLedgerError traduz os erros do caderninho. Falha no meio de uma
// operação multi-passo sai com o passo no corpo, para reconciliação.
func writeLedgerError(c *gin.Context, log zerolog.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	if step, ok := ledgerdomain.FailedStep(err); ok {
		log.Error().Err(err).Str("step", string(step)).Msg("ledger operation failed mid-flight")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error_code": "ledger_step_failed",
			"step":       string(step),
			"message":    "A operação falhou no meio; confira o passo indicado.",
		})
		return
	}

	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case "transaction_not_found", "client_not_found", "fiado_transaction_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	default:
		httperr.BadRequest(c, code, "Requisição inválida.")
	}
}
