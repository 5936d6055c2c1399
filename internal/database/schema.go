package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// catalogTables lists the DDL for the lump catalog in creation order
var catalogTables = []struct {
	name string
	ddl  string
}{
	{"_wad", `CREATE TABLE IF NOT EXISTS "_wad" (
		"key" TEXT PRIMARY KEY,
		"value" TEXT NOT NULL
	)`},
	{"lumps", `CREATE TABLE IF NOT EXISTS "lumps" (
		"idx" INTEGER PRIMARY KEY,
		"name" TEXT NOT NULL,
		"file_offset" INTEGER NOT NULL,
		"size" INTEGER NOT NULL,
		"virtual" INTEGER NOT NULL,
		"digest" TEXT
	)`},
	{"levels", `CREATE TABLE IF NOT EXISTS "levels" (
		"idx" INTEGER PRIMARY KEY,
		"name" TEXT NOT NULL,
		"lump" INTEGER NOT NULL REFERENCES "lumps"("idx"),
		"sky" TEXT
	)`},
	{"things", `CREATE TABLE IF NOT EXISTS "things" (
		"level" INTEGER NOT NULL REFERENCES "levels"("idx"),
		"idx" INTEGER NOT NULL,
		"x" INTEGER NOT NULL,
		"y" INTEGER NOT NULL,
		"angle" INTEGER NOT NULL,
		"type" INTEGER NOT NULL,
		"flags" INTEGER NOT NULL,
		"sprite" TEXT,
		PRIMARY KEY ("level", "idx")
	)`},
}

var catalogIndexes = []string{
	`CREATE INDEX IF NOT EXISTS "lumps_name" ON "lumps"("name")`,
	`CREATE INDEX IF NOT EXISTS "things_type" ON "things"("type")`,
}

// DDLManager creates the catalog schema
type DDLManager struct {
	db *Database
}

// NewDDLManager creates a new DDL manager
func NewDDLManager(db *Database) *DDLManager {
	return &DDLManager{db: db}
}

// CreateSchemas creates every catalog table and index in a single transaction
func (dm *DDLManager) CreateSchemas(ctx context.Context) error {
	tx, err := dm.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, table := range catalogTables {
		slog.Debug("Creating table", "table", table.name)
		if _, err := tx.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("creating table %s: %w", table.name, err)
		}
	}

	for _, ddl := range catalogIndexes {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}

	return nil
}

// quoteSQLIdentifier quotes an identifier for use in generated SQL
func quoteSQLIdentifier(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
