package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jchantrell/wadex/internal/utils"
)

// BulkInserter handles batched insertion of catalog rows
type BulkInserter struct {
	db        *Database
	batchSize int
}

// BulkInsertOptions configures bulk insertion behavior
type BulkInsertOptions struct {
	// BatchSize determines how many rows to insert per transaction
	BatchSize int
}

// DefaultBulkInsertOptions returns sensible defaults for bulk insertion
func DefaultBulkInsertOptions() *BulkInsertOptions {
	return &BulkInsertOptions{
		BatchSize: 1000,
	}
}

// NewBulkInserter creates a new bulk inserter with the given database and options
func NewBulkInserter(db *Database, options *BulkInsertOptions) *BulkInserter {
	if options == nil || options.BatchSize <= 0 {
		options = DefaultBulkInsertOptions()
	}

	return &BulkInserter{
		db:        db,
		batchSize: options.BatchSize,
	}
}

// TableData is a set of rows for one table
type TableData struct {
	// Name is the table name, converted to snake_case
	Name string

	// Columns are the column names in row order
	Columns []string

	// Rows holds the values, one slice per row, aligned with Columns
	Rows [][]any
}

// InsertTableData performs bulk insertion of table data with transaction batching
func (bi *BulkInserter) InsertTableData(ctx context.Context, tableData *TableData) error {
	if tableData == nil {
		return fmt.Errorf("table data cannot be nil")
	}

	if len(tableData.Rows) == 0 {
		slog.Debug("No rows to insert", "table", tableData.Name)
		return nil
	}

	tableName := utils.ToSnakeCase(tableData.Name)
	insertSQL := generateInsertSQL(tableName, tableData.Columns)

	for i := 0; i < len(tableData.Rows); i += bi.batchSize {
		end := min(i+bi.batchSize, len(tableData.Rows))

		if err := bi.insertBatch(ctx, insertSQL, len(tableData.Columns), tableData.Rows[i:end]); err != nil {
			return fmt.Errorf("inserting batch %d-%d for table %s: %w", i, end-1, tableName, err)
		}
	}

	slog.Debug("Inserted rows", "table", tableName, "rows", utils.Number(int64(len(tableData.Rows))))

	return nil
}

// generateInsertSQL creates the INSERT statement for a table
func generateInsertSQL(tableName string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quoteSQLIdentifier(column)
		placeholders[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteSQLIdentifier(tableName),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

// insertBatch inserts a single batch of rows within a transaction
func (bi *BulkInserter) insertBatch(ctx context.Context, insertSQL string, columnCount int, batch [][]any) error {
	tx, err := bi.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Safe to call even after commit

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range batch {
		if len(row) != columnCount {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), columnCount)
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
