package infra

import (
	"fmt"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// that GORM cannot express (partial indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Client{},
		&model.Staff{},
		&model.CatalogItem{},
		&model.Appointment{},
		&model.Comanda{},
		&model.ComandaItem{},
		&model.Transaction{},
		&model.StockMovement{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Each statement uses IF NOT EXISTS / guard semantics so re-running
// on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Stock must never go negative, whatever the application does
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_catalog_items_stock_nonneg') THEN
		    ALTER TABLE catalog_items ADD CONSTRAINT chk_catalog_items_stock_nonneg CHECK (stock >= 0);
		  END IF;
		END $$`,
		// Partial index backing the open-comandas dashboard query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_comandas_open') THEN
		    CREATE INDEX idx_comandas_open ON comandas (created_at) WHERE status = 'open';
		  END IF;
		END $$`,
		// Partial index for the per-staff overlap check at booking time
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_appointments_staff_window') THEN
		    CREATE INDEX idx_appointments_staff_window
		        ON appointments (staff_id, start_time, end_time)
		        WHERE status IN ('confirmed', 'pending');
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
