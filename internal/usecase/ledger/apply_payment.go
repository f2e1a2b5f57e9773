package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

// ======================================================
// APPLY PAYMENT (parcial ou quitação)
// ======================================================

type ApplyPaymentInput struct {
	ClientID           uint
	FiadoTransactionID uint
	Amount             decimal.Decimal
}

type ApplyPaymentResult struct {
	Transaction *models.FiadoTransaction
	Client      *models.FiadoClient
	Settled     bool
}

type ApplyPayment struct {
	repo domain.Repository

	// settleMethod é o meio de pagamento gravado na transação-mãe ao
	// quitar o fiado (padrão "dinheiro", configurável).
	settleMethod string
}

func NewApplyPayment(repo domain.Repository, settleMethod string) *ApplyPayment {
	if settleMethod == "" {
		settleMethod = domain.MethodDinheiro
	}
	return &ApplyPayment{repo: repo, settleMethod: settleMethod}
}

// Execute abate o valor pago. Quitação zera a parcela, marca paid,
// completa a transação-mãe e troca seu meio de pagamento para o método
// de quitação. A dívida do cliente nunca fica negativa.
func (uc *ApplyPayment) Execute(
	ctx context.Context,
	in ApplyPaymentInput,
) (*ApplyPaymentResult, error) {

	if in.Amount.Sign() <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	ft, err := uc.repo.GetFiadoTransaction(ctx, in.ClientID, in.FiadoTransactionID)
	if err != nil {
		return nil, domain.Fail(domain.StepFiadoLookup, err)
	}

	remaining := ft.Amount.Sub(in.Amount)
	settled := remaining.Sign() <= 0

	if settled {
		ft.Amount = decimal.Zero
		ft.Status = domain.FiadoPaid
	} else {
		ft.Amount = remaining
	}

	if err := uc.repo.UpdateFiadoTransaction(ctx, ft); err != nil {
		return nil, domain.Fail(domain.StepFiadoUpdate, err)
	}

	if settled {
		if err := uc.repo.SettleTransaction(ctx, ft.TransactionID, uc.settleMethod); err != nil {
			return nil, domain.Fail(domain.StepTransactionSettle, err)
		}
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, domain.Fail(domain.StepClientLookup, err)
	}

	debt := client.TotalDebt.Sub(in.Amount)
	if debt.Sign() < 0 {
		debt = decimal.Zero
	}
	client.TotalDebt = debt

	if err := uc.repo.UpdateClientDebt(ctx, client.ID, debt); err != nil {
		return nil, domain.Fail(domain.StepClientUpdate, err)
	}

	return &ApplyPaymentResult{
		Transaction: ft,
		Client:      client,
		Settled:     settled,
	}, nil
}

// ======================================================
// MARK PAID (quitação em um passo)
// ======================================================

type MarkPaid struct {
	apply *ApplyPayment
	repo  domain.Repository
}

func NewMarkPaid(repo domain.Repository, settleMethod string) *MarkPaid {
	return &MarkPaid{
		apply: NewApplyPayment(repo, settleMethod),
		repo:  repo,
	}
}

func (uc *MarkPaid) Execute(
	ctx context.Context,
	clientID uint,
	fiadoTransactionID uint,
) (*ApplyPaymentResult, error) {

	ft, err := uc.repo.GetFiadoTransaction(ctx, clientID, fiadoTransactionID)
	if err != nil {
		return nil, domain.Fail(domain.StepFiadoLookup, err)
	}

	return uc.apply.Execute(ctx, ApplyPaymentInput{
		ClientID:           clientID,
		FiadoTransactionID: fiadoTransactionID,
		Amount:             ft.Amount,
	})
}
