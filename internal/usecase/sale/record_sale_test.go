package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
	ledgeruc "github.com/barberflowapp/barberflow-api/internal/usecase/ledger"
)

// stubSaleRepo cobre a venda e, nos campos de fiado, o suficiente do
// caderninho para o caminho de crédito.
type stubSaleRepo struct {
	transactions []*models.Transaction
	stockDeltas  map[uint]int

	clients map[uint]*models.FiadoClient
	fiados  []*models.FiadoTransaction
	nextID  uint
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		stockDeltas: make(map[uint]int),
		clients:     make(map[uint]*models.FiadoClient),
		nextID:      1,
	}
}

func (r *stubSaleRepo) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	tx.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *stubSaleRepo) AdjustProductStock(_ context.Context, productID uint, delta int) error {
	r.stockDeltas[productID] += delta
	return nil
}

// -------- domain/ledger.Repository (caminho fiado) --------

func (r *stubSaleRepo) FindClient(_ context.Context, name, phone string) (*models.FiadoClient, error) {
	for _, c := range r.clients {
		if c.Name == name && c.Phone == phone {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubSaleRepo) GetClient(_ context.Context, id uint) (*models.FiadoClient, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubSaleRepo) CreateClient(_ context.Context, client *models.FiadoClient) error {
	client.ID = r.nextID
	r.nextID++
	r.clients[client.ID] = client
	return nil
}

func (r *stubSaleRepo) UpdateClientDebt(_ context.Context, clientID uint, debt decimal.Decimal) error {
	r.clients[clientID].TotalDebt = debt
	return nil
}

func (r *stubSaleRepo) CreateFiadoTransaction(_ context.Context, ft *models.FiadoTransaction) error {
	ft.ID = r.nextID
	r.nextID++
	r.fiados = append(r.fiados, ft)
	return nil
}

func (r *stubSaleRepo) GetFiadoTransaction(context.Context, uint, uint) (*models.FiadoTransaction, error) {
	return nil, errors.New("not implemented")
}

func (r *stubSaleRepo) FindFiadoByTransaction(context.Context, uint) (*models.FiadoTransaction, error) {
	return nil, errors.New("not implemented")
}

func (r *stubSaleRepo) UpdateFiadoTransaction(context.Context, *models.FiadoTransaction) error {
	return errors.New("not implemented")
}

func (r *stubSaleRepo) DeleteFiadoTransaction(context.Context, uint) error {
	return errors.New("not implemented")
}

func (r *stubSaleRepo) GetTransaction(context.Context, uint) (*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (r *stubSaleRepo) SettleTransaction(context.Context, uint, string) error {
	return errors.New("not implemented")
}

func (r *stubSaleRepo) DeleteTransaction(context.Context, uint) error {
	return errors.New("not implemented")
}

func (r *stubSaleRepo) FindProductByName(context.Context, string) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (r *stubSaleRepo) AddProductStock(context.Context, uint, int) error {
	return errors.New("not implemented")
}

var _ Repository = (*stubSaleRepo)(nil)
var _ domain.Repository = (*stubSaleRepo)(nil)

type noopSink struct{}

func (noopSink) Log(*uint, string, string, *uint, any) error { return nil }

func newRecordSale(repo *stubSaleRepo) *RecordSale {
	dispatcher := audit.NewDispatcher(noopSink{}, zerolog.Nop())
	return NewRecordSale(repo, ledgeruc.NewRecordCreditSale(repo), dispatcher)
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ---------------------------------------------------

func TestRecordSaleCash(t *testing.T) {
	repo := newStubSaleRepo()
	uc := newRecordSale(repo)

	tx, err := uc.Execute(context.Background(), RecordSaleInput{
		Items: []CartItem{
			{Kind: "product", ProductID: 7, Name: "Shampoo", Qty: 2, UnitPrice: dec(25)},
			{Kind: "service", Name: "Corte", Qty: 1, UnitPrice: dec(35), Barber: "João"},
		},
		PaymentMethod: domain.MethodDinheiro,
	})

	require.NoError(t, err)
	assert.Equal(t, "2x Shampoo, 1x Corte (João)", tx.Description)
	assert.Equal(t, string(domain.TypeMixed), tx.Type)
	assert.Equal(t, domain.TxCompleted, tx.Status)
	assert.True(t, dec(85).Equal(tx.Amount))

	// Só o item de produto baixa estoque.
	assert.Equal(t, map[uint]int{7: -2}, repo.stockDeltas)
	assert.Empty(t, repo.fiados)
}

func TestRecordSaleFiado(t *testing.T) {
	repo := newStubSaleRepo()
	uc := newRecordSale(repo)

	tx, err := uc.Execute(context.Background(), RecordSaleInput{
		Items: []CartItem{
			{Kind: "product", ProductID: 7, Name: "Shampoo", Qty: 2, UnitPrice: dec(25)},
		},
		PaymentMethod: domain.MethodFiado,
		ClientName:    "Carlos",
		ClientPhone:   "11999990000",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TxPending, tx.Status)
	assert.Equal(t, string(domain.TypeProduct), tx.Type)

	// Fiado não baixa estoque na venda; a baixa real é na entrega e o
	// estorno devolve pela descrição.
	assert.Empty(t, repo.stockDeltas)

	require.Len(t, repo.fiados, 1)
	assert.Equal(t, tx.ID, repo.fiados[0].TransactionID)
	assert.True(t, dec(50).Equal(repo.fiados[0].Amount))

	client, err := repo.FindClient(context.Background(), "Carlos", "11999990000")
	require.NoError(t, err)
	assert.True(t, dec(50).Equal(client.TotalDebt))
}

func TestRecordSaleFiadoFallbackType(t *testing.T) {
	repo := newStubSaleRepo()
	uc := newRecordSale(repo)

	// Nome fora da gramática de fragmentos: cai no fallback fiado.
	tx, err := uc.Execute(context.Background(), RecordSaleInput{
		Items: []CartItem{
			{Kind: "product", Name: "", Qty: 1, UnitPrice: dec(10)},
		},
		PaymentMethod: domain.MethodFiado,
		ClientName:    "Carlos",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.TypeFiado), tx.Type)
}

func TestRecordSaleValidation(t *testing.T) {
	repo := newStubSaleRepo()
	uc := newRecordSale(repo)

	_, err := uc.Execute(context.Background(), RecordSaleInput{
		PaymentMethod: domain.MethodDinheiro,
	})
	assert.True(t, httperr.IsBusiness(err, "empty_cart"))

	_, err = uc.Execute(context.Background(), RecordSaleInput{
		Items:         []CartItem{{Kind: "product", Name: "Shampoo", Qty: 1}},
		PaymentMethod: "cheque",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))

	_, err = uc.Execute(context.Background(), RecordSaleInput{
		Items:         []CartItem{{Kind: "product", Name: "Shampoo", Qty: 1}},
		PaymentMethod: domain.MethodFiado,
	})
	assert.True(t, httperr.IsBusiness(err, "missing_client_name"))

	_, err = uc.Execute(context.Background(), RecordSaleInput{
		Items:         []CartItem{{Kind: "product", Name: "Shampoo", Qty: 0}},
		PaymentMethod: domain.MethodDinheiro,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}
