package infra

import (
	"fmt"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (the barra ticket sequence, indexes on hot queries).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately so
// integration tests can migrate a containerized database without the pool
// tuning of NewDatabase.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Mesa{},
		&model.Producto{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.MovimientoCaja{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Walk-up tabs are identified by a monotonically increasing ticket
		// number so that two customers named "Juan" never share a cuenta.
		{"barra ticket sequence",
			`CREATE SEQUENCE IF NOT EXISTS pedidos_ticket_barra_seq START 1`},

		// Hot query: open pedidos per mesa (the salon view runs it on every load).
		{"open pedidos per mesa index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_mesa_pendiente') THEN
    CREATE INDEX idx_pedidos_mesa_pendiente
        ON pedidos (mesa_id)
        WHERE estado = 'pendiente' AND mesa_id IS NOT NULL;
  END IF;
END $$`},

		// Hot query: open barra tabs grouped by ticket.
		{"open barra tabs index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_ticket_pendiente') THEN
    CREATE INDEX idx_pedidos_ticket_pendiente
        ON pedidos (ticket_barra)
        WHERE estado = 'pendiente' AND ticket_barra IS NOT NULL;
  END IF;
END $$`},

		// Reporting reads cobrados by day, newest first.
		{"cobrados by created_at index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_cobrado_created') THEN
    CREATE INDEX idx_pedidos_cobrado_created
        ON pedidos (created_at DESC)
        WHERE estado = 'cobrado';
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
