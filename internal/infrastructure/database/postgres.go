package database

import (
	"fmt"
	"log"

	"github.com/sritek/scoops-fees/internal/config"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // surfaces unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities, then applies the
// partial unique indexes that carry the engine's conflict invariants.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Registry entities
		&entity.FeeComponent{},
		&entity.Scholarship{},
		&entity.StudentScholarship{},

		// Fee structure entities
		&entity.FeeStructure{},
		&entity.FeeStructureComponent{},
		&entity.EMIPlanTemplate{},

		// Installment entities
		&entity.FeeInstallment{},
		&entity.InstallmentPayment{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Partial unique indexes. GORM tags cannot express the WHERE clause, and
	// these constraints are what make duplicate builds and double generation
	// race-fail at the database rather than rely on application locking:
	//  - one active component name
	//  - one active structure per (student, session)
	//  - one installment set per structure (per installment number)
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_fee_components_active_name
			ON fee_components (name) WHERE deleted_at IS NULL AND is_active`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_fee_structures_student_session
			ON fee_structures (student_id, session_id) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_fee_installments_structure_number
			ON fee_installments (fee_structure_id, installment_number) WHERE deleted_at IS NULL`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
