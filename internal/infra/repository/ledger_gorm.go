package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/ledger"
	"github.com/barberflowapp/barberflow-api/internal/models"
	"github.com/barberflowapp/barberflow-api/internal/usecase/sale"
)

type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

// --------------------------------------------------
// Fiado client
// --------------------------------------------------

// FindClient casa pelo par exato (name, phone); telefone vazio também
// é chave válida.
func (r *LedgerGormRepository) FindClient(
	ctx context.Context,
	name string,
	phone string,
) (*models.FiadoClient, error) {

	var client models.FiadoClient
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("name = ? AND phone = ?", name, phone).
			First(&client).Error
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *LedgerGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.FiadoClient, error) {

	var client models.FiadoClient
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *LedgerGormRepository) CreateClient(
	ctx context.Context,
	client *models.FiadoClient,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *LedgerGormRepository) UpdateClientDebt(
	ctx context.Context,
	clientID uint,
	debt decimal.Decimal,
) error {
	return r.db.WithContext(ctx).
		Model(&models.FiadoClient{}).
		Where("id = ?", clientID).
		Update("total_debt", debt).Error
}

// --------------------------------------------------
// Fiado transaction
// --------------------------------------------------

func (r *LedgerGormRepository) CreateFiadoTransaction(
	ctx context.Context,
	ft *models.FiadoTransaction,
) error {
	return r.db.WithContext(ctx).Create(ft).Error
}

func (r *LedgerGormRepository) GetFiadoTransaction(
	ctx context.Context,
	clientID uint,
	id uint,
) (*models.FiadoTransaction, error) {

	var ft models.FiadoTransaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&ft).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *LedgerGormRepository) FindFiadoByTransaction(
	ctx context.Context,
	transactionID uint,
) (*models.FiadoTransaction, error) {

	var ft models.FiadoTransaction
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&ft).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *LedgerGormRepository) UpdateFiadoTransaction(
	ctx context.Context,
	ft *models.FiadoTransaction,
) error {
	return r.db.WithContext(ctx).Save(ft).Error
}

func (r *LedgerGormRepository) DeleteFiadoTransaction(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.FiadoTransaction{}, id).Error
}

// --------------------------------------------------
// Parent transaction
// --------------------------------------------------

func (r *LedgerGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *LedgerGormRepository) GetTransaction(
	ctx context.Context,
	id uint,
) (*models.Transaction, error) {

	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *LedgerGormRepository) SettleTransaction(
	ctx context.Context,
	id uint,
	method string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         domain.TxCompleted,
			"payment_method": method,
		}).Error
}

func (r *LedgerGormRepository) DeleteTransaction(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *LedgerGormRepository) FindProductByName(
	ctx context.Context,
	name string,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *LedgerGormRepository) AddProductStock(
	ctx context.Context,
	productID uint,
	qty int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

// AdjustProductStock é a variação usada na venda (delta negativo).
func (r *LedgerGormRepository) AdjustProductStock(
	ctx context.Context,
	productID uint,
	delta int,
) error {
	return r.AddProductStock(ctx, productID, delta)
}

// Compile-time checks
var _ domain.Repository = (*LedgerGormRepository)(nil)
var _ sale.Repository = (*LedgerGormRepository)(nil)
