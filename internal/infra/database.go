package infra

import (
	"fmt"

	"licitasis/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx.
// Schema migration is NOT run here: legacy installs carry drifted schemas
// (missing optional columns, singular table names) that must be left exactly
// as they are — the capability probe adapts queries to whatever exists.
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

	return db, nil
}

// Migrate creates/updates all tables for a fresh install and applies the
// idempotent patches GORM cannot express. Never call it against a legacy
// database: AutoMigrate would add the optional columns whose absence the
// report builder is designed to tolerate, masking drift instead of adapting
// to it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Fornecedor{},
		&model.Transportadora{},
		&model.Produto{},
		&model.ProdutoCompra{},
		&model.Venda{},
		&model.VendaProduto{},
		&model.Empenho{},
		&model.EmpenhoProduto{},
		&model.Usuario{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS / existence-check
// semantics so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the contas-recebidas listing
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'vendas')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_vendas_recebidas') THEN
		    CREATE INDEX idx_vendas_recebidas
		        ON vendas (cliente_uasg)
		        WHERE status_pagamento = 'Recebido';
		  END IF;
		END $$`,
		// Audit log is append-only; queries filter by table+record
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'audit_log')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_audit_log_table_record') THEN
		    CREATE INDEX idx_audit_log_table_record
		        ON audit_log (table_name, record_id);
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
