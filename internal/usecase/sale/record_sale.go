package sale

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
	ledgeruc "github.com/barberflowapp/barberflow-api/internal/usecase/ledger"
)

type Repository interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	AdjustProductStock(ctx context.Context, productID uint, delta int) error
}

// ======================================================
// INPUT
// ======================================================

type CartItem struct {
	// Kind ∈ {product, service}.
	Kind string

	// ProductID só para itens de produto (baixa de estoque).
	ProductID uint

	Name      string
	Qty       int
	UnitPrice decimal.Decimal

	// Barber aparece como sufixo "(Nome)" nos fragmentos de serviço.
	Barber string
}

type RecordSaleInput struct {
	Items []CartItem

	PaymentMethod string
	ClientName    string
	ClientPhone   string

	UserID   *uint
	BarberID *uint
}

// ======================================================
// USE CASE
// ======================================================

type RecordSale struct {
	repo   Repository
	credit *ledgeruc.RecordCreditSale
	audit  *audit.Dispatcher
}

func NewRecordSale(
	repo Repository,
	credit *ledgeruc.RecordCreditSale,
	auditDispatcher *audit.Dispatcher,
) *RecordSale {
	return &RecordSale{repo: repo, credit: credit, audit: auditDispatcher}
}

// Execute grava a venda: monta a descrição a partir do carrinho, soma o
// total, insere a transação e, quando o pagamento é fiado, registra a
// dívida no caderninho. Baixa de estoque só acontece aqui para venda
// não-fiado de produto; a reversão é quem devolve.
func (uc *RecordSale) Execute(
	ctx context.Context,
	in RecordSaleInput,
) (*models.Transaction, error) {

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_cart")
	}
	if !validMethod(in.PaymentMethod) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	isFiado := in.PaymentMethod == domain.MethodFiado
	if isFiado && in.ClientName == "" {
		return nil, httperr.ErrBusiness("missing_client_name")
	}

	var desc domain.Description
	total := decimal.Zero
	for _, item := range in.Items {
		if item.Qty <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		f := domain.Fragment{Qty: item.Qty, Name: item.Name}
		if item.Kind == "service" {
			f.Barber = item.Barber
		}
		desc = append(desc, f)
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	fallback := domain.TypeProduct
	if isFiado {
		fallback = domain.TypeFiado
	}

	status := domain.TxCompleted
	if isFiado {
		status = domain.TxPending
	}

	tx := &models.Transaction{
		Type:          string(domain.DetermineType(desc.String(), fallback)),
		Description:   desc.String(),
		Amount:        total,
		UserID:        in.UserID,
		BarberID:      in.BarberID,
		ClientName:    in.ClientName,
		ClientPhone:   in.ClientPhone,
		PaymentMethod: in.PaymentMethod,
		Status:        status,
	}

	if err := uc.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if isFiado {
		if _, err := uc.credit.Execute(ctx, ledgeruc.RecordCreditSaleInput{
			ClientName:    in.ClientName,
			Phone:         in.ClientPhone,
			Amount:        total,
			Description:   tx.Description,
			TransactionID: tx.ID,
		}); err != nil {
			return nil, err
		}
	} else {
		for _, item := range in.Items {
			if item.Kind != "product" || item.ProductID == 0 {
				continue
			}
			if err := uc.repo.AdjustProductStock(ctx, item.ProductID, -item.Qty); err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "sale_recorded",
		Entity:   "transaction",
		EntityID: &tx.ID,
	})

	return tx, nil
}

func validMethod(m string) bool {
	switch m {
	case domain.MethodDinheiro, domain.MethodCartao, domain.MethodPix, domain.MethodFiado:
		return true
	}
	return false
}
