package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

type Repository interface {
	// -------- Fiado client --------
	FindClient(
		ctx context.Context,
		name string,
		phone string,
	) (*models.FiadoClient, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.FiadoClient, error)

	CreateClient(
		ctx context.Context,
		client *models.FiadoClient,
	) error

	UpdateClientDebt(
		ctx context.Context,
		clientID uint,
		debt decimal.Decimal,
	) error

	// -------- Fiado transaction --------
	CreateFiadoTransaction(
		ctx context.Context,
		ft *models.FiadoTransaction,
	) error

	GetFiadoTransaction(
		ctx context.Context,
		clientID uint,
		id uint,
	) (*models.FiadoTransaction, error)

	FindFiadoByTransaction(
		ctx context.Context,
		transactionID uint,
	) (*models.FiadoTransaction, error)

	UpdateFiadoTransaction(
		ctx context.Context,
		ft *models.FiadoTransaction,
	) error

	DeleteFiadoTransaction(
		ctx context.Context,
		id uint,
	) error

	// -------- Parent transaction --------
	GetTransaction(
		ctx context.Context,
		id uint,
	) (*models.Transaction, error)

	SettleTransaction(
		ctx context.Context,
		id uint,
		method string,
	) error

	DeleteTransaction(
		ctx context.Context,
		id uint,
	) error

	// -------- Products (stock restore) --------
	FindProductByName(
		ctx context.Context,
		name string,
	) (*models.Product, error)

	AddProductStock(
		ctx context.Context,
		productID uint,
		qty int,
	) error
}
