package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

var errNotFound = errors.New("record not found")

// stubLedgerRepo guarda o caderninho em memória para os testes.
type stubLedgerRepo struct {
	clients      map[uint]*models.FiadoClient
	fiados       map[uint]*models.FiadoTransaction
	transactions map[uint]*models.Transaction
	products     map[uint]*models.Product

	nextID uint
}

func newStubLedgerRepo() *stubLedgerRepo {
	return &stubLedgerRepo{
		clients:      make(map[uint]*models.FiadoClient),
		fiados:       make(map[uint]*models.FiadoTransaction),
		transactions: make(map[uint]*models.Transaction),
		products:     make(map[uint]*models.Product),
		nextID:       1,
	}
}

func (r *stubLedgerRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

// -------- Fiado client --------

func (r *stubLedgerRepo) FindClient(_ context.Context, name, phone string) (*models.FiadoClient, error) {
	for _, c := range r.clients {
		if c.Name == name && c.Phone == phone {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubLedgerRepo) GetClient(_ context.Context, id uint) (*models.FiadoClient, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubLedgerRepo) CreateClient(_ context.Context, client *models.FiadoClient) error {
	client.ID = r.id()
	r.clients[client.ID] = client
	return nil
}

func (r *stubLedgerRepo) UpdateClientDebt(_ context.Context, clientID uint, debt decimal.Decimal) error {
	c, ok := r.clients[clientID]
	if !ok {
		return errNotFound
	}
	c.TotalDebt = debt
	return nil
}

// -------- Fiado transaction --------

func (r *stubLedgerRepo) CreateFiadoTransaction(_ context.Context, ft *models.FiadoTransaction) error {
	ft.ID = r.id()
	r.fiados[ft.ID] = ft
	return nil
}

func (r *stubLedgerRepo) GetFiadoTransaction(_ context.Context, clientID, id uint) (*models.FiadoTransaction, error) {
	ft, ok := r.fiados[id]
	if !ok || ft.ClientID != clientID {
		return nil, errNotFound
	}
	return ft, nil
}

func (r *stubLedgerRepo) FindFiadoByTransaction(_ context.Context, transactionID uint) (*models.FiadoTransaction, error) {
	for _, ft := range r.fiados {
		if ft.TransactionID == transactionID {
			return ft, nil
		}
	}
	return nil, errNotFound
}

func (r *stubLedgerRepo) UpdateFiadoTransaction(_ context.Context, ft *models.FiadoTransaction) error {
	if _, ok := r.fiados[ft.ID]; !ok {
		return errNotFound
	}
	r.fiados[ft.ID] = ft
	return nil
}

func (r *stubLedgerRepo) DeleteFiadoTransaction(_ context.Context, id uint) error {
	delete(r.fiados, id)
	return nil
}

// -------- Parent transaction --------

func (r *stubLedgerRepo) GetTransaction(_ context.Context, id uint) (*models.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, errNotFound
	}
	return tx, nil
}

func (r *stubLedgerRepo) SettleTransaction(_ context.Context, id uint, method string) error {
	tx, ok := r.transactions[id]
	if !ok {
		return errNotFound
	}
	tx.Status = domain.TxCompleted
	tx.PaymentMethod = method
	return nil
}

func (r *stubLedgerRepo) DeleteTransaction(_ context.Context, id uint) error {
	delete(r.transactions, id)
	return nil
}

// -------- Products --------

func (r *stubLedgerRepo) FindProductByName(_ context.Context, name string) (*models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubLedgerRepo) AddProductStock(_ context.Context, productID uint, qty int) error {
	p, ok := r.products[productID]
	if !ok {
		return errNotFound
	}
	p.Stock += qty
	return nil
}

var _ domain.Repository = (*stubLedgerRepo)(nil)

// -------- seeds --------

func (r *stubLedgerRepo) seedClient(name, phone string, debt float64) *models.FiadoClient {
	c := &models.FiadoClient{Name: name, Phone: phone, TotalDebt: decimal.NewFromFloat(debt)}
	_ = r.CreateClient(context.Background(), c)
	return c
}

func (r *stubLedgerRepo) seedTransaction(method, desc string, amount float64) *models.Transaction {
	tx := &models.Transaction{
		Type:          string(domain.DetermineType(desc, domain.TypeFiado)),
		Description:   desc,
		Amount:        decimal.NewFromFloat(amount),
		PaymentMethod: method,
		Status:        domain.TxPending,
	}
	tx.ID = r.id()
	r.transactions[tx.ID] = tx
	return tx
}

func (r *stubLedgerRepo) seedFiado(clientID, transactionID uint, amount float64) *models.FiadoTransaction {
	ft := &models.FiadoTransaction{
		ClientID:      clientID,
		TransactionID: transactionID,
		Amount:        decimal.NewFromFloat(amount),
		Status:        domain.FiadoPending,
	}
	_ = r.CreateFiadoTransaction(context.Background(), ft)
	return ft
}

func (r *stubLedgerRepo) seedProduct(name string, stock int) *models.Product {
	p := &models.Product{Name: name, Stock: stock}
	p.ID = r.id()
	r.products[p.ID] = p
	return p
}
