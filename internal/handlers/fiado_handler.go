package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
	"github.com/barberflowapp/barberflow-api/internal/models"
	ledgeruc "github.com/barberflowapp/barberflow-api/internal/usecase/ledger"
)

// FiadoHandler é o caderninho: clientes devedores, pagamento parcial e
// quitação de parcela.
type FiadoHandler struct {
	db       *gorm.DB
	pay      *ledgeruc.ApplyPayment
	markPaid *ledgeruc.MarkPaid
	log      zerolog.Logger
}

func NewFiadoHandler(
	db *gorm.DB,
	pay *ledgeruc.ApplyPayment,
	markPaid *ledgeruc.MarkPaid,
	log zerolog.Logger,
) *FiadoHandler {
	return &FiadoHandler{db: db, pay: pay, markPaid: markPaid, log: log}
}

// GET /api/fiado/clients lista os devedores, parcelas mais recentes primeiro.
func (h *FiadoHandler) ListClients(c *gin.Context) {
	var clients []models.FiadoClient
	err := h.db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Não foi possível listar os clientes.")
		return
	}

	httpresp.List(c, clients)
}

type PayRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// POST /api/fiado/clients/:id/transactions/:txId/pay
func (h *FiadoHandler) Pay(c *gin.Context) {
	clientID, txID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.pay.Execute(c.Request.Context(), ledgeruc.ApplyPaymentInput{
		ClientID:           clientID,
		FiadoTransactionID: txID,
		Amount:             req.Amount,
	})
	if err != nil {
		writeLedgerError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"transaction": result.Transaction,
		"client":      result.Client,
		"settled":     result.Settled,
	})
}

// POST /api/fiado/clients/:id/transactions/:txId/mark-paid
func (h *FiadoHandler) MarkPaid(c *gin.Context) {
	clientID, txID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	result, err := h.markPaid.Execute(c.Request.Context(), clientID, txID)
	if err != nil {
		writeLedgerError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"transaction": result.Transaction,
		"client":      result.Client,
		"settled":     result.Settled,
	})
}

func (h *FiadoHandler) pathIDs(c *gin.Context) (clientID, txID uint, ok bool) {
	cid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID do cliente inválido.")
		return 0, 0, false
	}

	tid, err := strconv.ParseUint(c.Param("txId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID da parcela inválido.")
		return 0, 0, false
	}

	return uint(cid), uint(tid), true
}
