package database

import (
	"fmt"
	"log"
	"time"

	"restaurant-order-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Postgres *gorm.DB
}

func NewDatabase(postgresURL string) (*Database, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(postgresURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Connected to PostgreSQL successfully")
	return &Database{Postgres: db}, nil
}

// Migrate creates all tables and the constraints backing the single-default-address
// and single-payment-per-order invariants.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.RestaurantInfo{},
	); err != nil {
		return err
	}

	// At most one default address per user. Partial indexes are supported by
	// both postgres and the sqlite driver used in tests.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_addresses_single_default ON addresses (user_id) WHERE is_default",
	).Error
}

func (db *Database) Close() error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
