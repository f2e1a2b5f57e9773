package ledger

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
)

// ======================================================
// REVERSE TRANSACTION (exclusão com estorno)
// ======================================================

type ReverseTransaction struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewReverseTransaction(repo domain.Repository, log zerolog.Logger) *ReverseTransaction {
	return &ReverseTransaction{repo: repo, log: log}
}

// Execute desfaz uma venda: abate a dívida e remove a parcela quando o
// pagamento foi fiado, devolve estoque dos itens de produto e apaga a
// transação. Os passos são requisições independentes ao gateway; uma
// falha no meio deixa estado parcial e sai com o passo identificado no
// erro para reconciliação manual.
func (uc *ReverseTransaction) Execute(ctx context.Context, transactionID uint) error {
	tx, err := uc.repo.GetTransaction(ctx, transactionID)
	if err != nil {
		return httperr.ErrBusiness("transaction_not_found")
	}

	if tx.PaymentMethod == domain.MethodFiado {
		if err := uc.reverseFiado(ctx, transactionID); err != nil {
			return err
		}
	}

	txType := domain.TransactionType(tx.Type)
	if txType == domain.TypeProduct || txType == domain.TypeMixed {
		if err := uc.restoreStock(ctx, tx.Description); err != nil {
			return err
		}
	}

	if err := uc.repo.DeleteTransaction(ctx, transactionID); err != nil {
		return domain.Fail(domain.StepTransactionDelete, err)
	}

	return nil
}

func (uc *ReverseTransaction) reverseFiado(ctx context.Context, transactionID uint) error {
	ft, err := uc.repo.FindFiadoByTransaction(ctx, transactionID)
	if err != nil {
		// Venda fiado sem parcela vinculada (já quitada e removida,
		// ou dado legado): nada a estornar.
		uc.log.Debug().
			Uint("transaction_id", transactionID).
			Msg("fiado reversal: no linked installment")
		return nil
	}

	client, err := uc.repo.GetClient(ctx, ft.ClientID)
	if err != nil {
		return domain.Fail(domain.StepClientLookup, err)
	}

	debt := client.TotalDebt.Sub(ft.Amount)
	if debt.Sign() < 0 {
		debt = decimal.Zero
	}
	if err := uc.repo.UpdateClientDebt(ctx, client.ID, debt); err != nil {
		return domain.Fail(domain.StepClientUpdate, err)
	}

	if err := uc.repo.DeleteFiadoTransaction(ctx, ft.ID); err != nil {
		return domain.Fail(domain.StepFiadoDelete, err)
	}

	return nil
}

// restoreStock devolve ao estoque cada fragmento de produto da
// descrição. Nomes sem produto correspondente são pulados em silêncio
// (comportamento leniente herdado), apenas logados.
func (uc *ReverseTransaction) restoreStock(ctx context.Context, description string) error {
	for _, f := range domain.ParseDescription(description) {
		if f.IsService() {
			continue
		}

		name := strings.TrimSpace(f.Name)
		product, err := uc.repo.FindProductByName(ctx, name)
		if err != nil {
			uc.log.Debug().
				Str("product", name).
				Msg("stock restore: product not found, skipping")
			continue
		}

		if err := uc.repo.AddProductStock(ctx, product.ID, f.Qty); err != nil {
			return domain.Fail(domain.StepStockRestore, err)
		}
	}
	return nil
}
