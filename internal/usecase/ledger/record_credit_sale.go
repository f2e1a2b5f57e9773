package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

// ======================================================
// RECORD CREDIT SALE (fiado)
// ======================================================

type RecordCreditSaleInput struct {
	ClientName string
	// Phone pode ser vazio; (name, phone) é a chave exata do cliente,
	// inclusive com telefone vazio. Comportamento herdado: dois clientes
	// homônimos sem telefone se fundem no mesmo caderninho.
	Phone string

	Amount        decimal.Decimal
	Description   string
	TransactionID uint
}

type RecordCreditSale struct {
	repo domain.Repository
}

func NewRecordCreditSale(repo domain.Repository) *RecordCreditSale {
	return &RecordCreditSale{repo: repo}
}

func (uc *RecordCreditSale) Execute(
	ctx context.Context,
	in RecordCreditSaleInput,
) (*models.FiadoClient, error) {

	client, err := uc.repo.FindClient(ctx, in.ClientName, in.Phone)
	if err != nil {
		client = &models.FiadoClient{
			Name:      in.ClientName,
			Phone:     in.Phone,
			TotalDebt: in.Amount,
		}
		if err := uc.repo.CreateClient(ctx, client); err != nil {
			return nil, domain.Fail(domain.StepClientCreate, err)
		}
	} else {
		client.TotalDebt = client.TotalDebt.Add(in.Amount)
		if err := uc.repo.UpdateClientDebt(ctx, client.ID, client.TotalDebt); err != nil {
			return nil, domain.Fail(domain.StepClientUpdate, err)
		}
	}

	ft := &models.FiadoTransaction{
		ClientID:      client.ID,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		Description:   in.Description,
		Status:        domain.FiadoPending,
	}
	if err := uc.repo.CreateFiadoTransaction(ctx, ft); err != nil {
		return nil, domain.Fail(domain.StepFiadoCreate, err)
	}

	return client, nil
}
