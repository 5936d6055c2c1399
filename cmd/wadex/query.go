package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/database"
)

var queryCmd = &cobra.Command{
	Use:   "query [SQL]",
	Short: "Query the catalog database from the command line",
	Long: `Query executes SQL against the catalog built by "wadex index",
lists the available tables, or shows the columns of a table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listTables, err := cmd.Flags().GetBool("tables")
		if err != nil {
			return fmt.Errorf("failed to get tables flag: %w", err)
		}
		schemaTable, err := cmd.Flags().GetString("schema")
		if err != nil {
			return fmt.Errorf("failed to get schema flag: %w", err)
		}

		slog.Debug("Query parameters",
			"database", cfg.Database,
			"list-tables", listTables,
			"schema", schemaTable)

		db, err := database.NewDatabase(database.ReadOnlyDatabaseOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening catalog (run wadex index first): %w", err)
		}
		defer db.Close()

		switch {
		case listTables:
			return printTables(ctx, db)
		case schemaTable != "":
			return printSchema(ctx, db, schemaTable)
		case len(args) > 0:
			return runQuery(ctx, db, args[0])
		default:
			return fmt.Errorf("no query provided, use --tables to list tables or --schema <table> to show schema")
		}
	},
}

func printTables(ctx context.Context, db *database.Database) error {
	rows, err := db.Query(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE '\_%' ESCAPE '\'
		ORDER BY name`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	fmt.Println("Available tables:")
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning table name: %w", err)
		}
		fmt.Printf("  %s\n", name)
	}
	return rows.Err()
}

func printSchema(ctx context.Context, db *database.Database, table string) error {
	rows, err := db.Query(ctx, `SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return fmt.Errorf("getting schema for table %s: %w", table, err)
	}
	defer rows.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Column\tType\tNotNull\tDefault\tPrimary\n")
	found := false
	for rows.Next() {
		var name, dataType string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&name, &dataType, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scanning schema row: %w", err)
		}
		found = true

		def := "NULL"
		if dflt.Valid {
			def = dflt.String
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, dataType, yesNo(notNull != 0), def, yesNo(pk != 0))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating schema: %w", err)
	}
	if !found {
		return fmt.Errorf("table %s not found", table)
	}

	fmt.Printf("Schema for table '%s':\n", table)
	return w.Flush()
}

func runQuery(ctx context.Context, db *database.Database, query string) error {
	slog.Debug("Executing SQL query", "query", query)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("getting column names: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	rules := make([]string, len(columns))
	for i, col := range columns {
		rules[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(w, strings.Join(rules, "\t"))

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	cells := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			switch v := v.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(v)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tables", false, "List available tables")
	queryCmd.Flags().String("schema", "", "Show schema for specified table")
}
