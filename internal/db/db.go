package db

import (
	"log"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/config"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	var db *gorm.DB

	// O banco pode subir depois da API (compose); tenta com backoff
	// exponencial antes de desistir.
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
		})
		return openErr
	}, boff)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.BarberSchedule{},
		&models.Service{},
		&models.Booking{},
		&models.Product{},
		&models.Transaction{},
		&models.FiadoClient{},
		&models.FiadoTransaction{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
