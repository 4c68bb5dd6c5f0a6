package pg

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  *string
}

type ForeignKey struct {
	Column string
	// References is formatted "table(column)".
	References string
}

type Table struct {
	Name        string
	Columns     []Column
	PrimaryKeys []string
	ForeignKeys []ForeignKey
}

// Inspector reads the public-schema catalog (tables, columns, primary keys,
// foreign keys) and renders it for prompts. The catalog is fetched once and
// cached; call Invalidate after DDL changes.
type Inspector struct {
	pool *pgxpool.Pool

	mu     sync.Mutex
	cached []Table
}

func NewInspector(pool *pgxpool.Pool) (*Inspector, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Inspector{pool: pool}, nil
}

// Invalidate drops the cached catalog so the next call refetches it.
func (in *Inspector) Invalidate() {
	in.mu.Lock()
	in.cached = nil
	in.mu.Unlock()
}

// Schema returns the cached catalog, fetching it on first use.
func (in *Inspector) Schema(ctx context.Context) ([]Table, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.cached != nil {
		return in.cached, nil
	}

	names, err := in.tableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		t := Table{Name: name}
		if t.Columns, err = in.columns(ctx, name); err != nil {
			return nil, fmt.Errorf("columns of %s: %w", name, err)
		}
		if t.PrimaryKeys, err = in.primaryKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("primary keys of %s: %w", name, err)
		}
		if t.ForeignKeys, err = in.foreignKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", name, err)
		}
		tables = append(tables, t)
	}

	in.cached = tables
	return tables, nil
}

func (in *Inspector) tableNames(ctx context.Context) ([]string, error) {
	rows, err := in.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (in *Inspector) columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := in.pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Column
	for rows.Next() {
		var c Column
		var nullable string
		if err := rows.Scan(&c.Name, &c.Type, &nullable, &c.Default); err != nil {
			return nil, err
		}
		c.Nullable = nullable == "YES"
		out = append(out, c)
	}
	return out, rows.Err()
}

func (in *Inspector) primaryKeys(ctx context.Context, table string) ([]string, error) {
	rows, err := in.pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_name = $1
		AND constraint_name IN (
			SELECT constraint_name
			FROM information_schema.table_constraints
			WHERE table_name = $1
			AND constraint_type = 'PRIMARY KEY'
		)
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (in *Inspector) foreignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows, err := in.pool.Query(ctx, `
		SELECT
			kcu.column_name,
			ccu.table_name AS foreign_table,
			ccu.column_name AS foreign_column
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = kcu.constraint_name
		WHERE kcu.table_name = $1
		AND kcu.constraint_name IN (
			SELECT constraint_name
			FROM information_schema.table_constraints
			WHERE table_name = $1
			AND constraint_type = 'FOREIGN KEY'
		)
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		var foreignTable, foreignColumn string
		if err := rows.Scan(&fk.Column, &foreignTable, &foreignColumn); err != nil {
			return nil, err
		}
		fk.References = fmt.Sprintf("%s(%s)", foreignTable, foreignColumn)
		out = append(out, fk)
	}
	return out, rows.Err()
}

// Formatted renders the catalog as a human-readable outline, restricted to
// filter when non-nil.
func (in *Inspector) Formatted(ctx context.Context, filter []string) (string, error) {
	tables, err := in.Schema(ctx)
	if err != nil {
		return "", err
	}
	return FormatTables(tables, filter), nil
}

// CreateStatements renders the catalog as normalized lowercase CREATE TABLE
// statements, restricted to filter when non-nil. This form feeds SQL
// generation prompts.
func (in *Inspector) CreateStatements(ctx context.Context, filter []string) (string, error) {
	tables, err := in.Schema(ctx)
	if err != nil {
		return "", err
	}
	return CreateTableStatements(tables, filter), nil
}

func includeTable(name string, filter []string) bool {
	if filter == nil {
		return true
	}
	for _, f := range filter {
		if f == name {
			return true
		}
	}
	return false
}

// FormatTables renders tables as an indented outline, one block per table.
func FormatTables(tables []Table, filter []string) string {
	var lines []string
	for _, t := range tables {
		if !includeTable(t.Name, filter) {
			continue
		}
		lines = append(lines, fmt.Sprintf("Table: %s", t.Name))

		cols := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			cols = append(cols, fmt.Sprintf("%s (%s)", c.Name, c.Type))
		}
		lines = append(lines, "  Columns: "+strings.Join(cols, ", "))

		if len(t.PrimaryKeys) > 0 {
			lines = append(lines, fmt.Sprintf("  Primary Key: %s", strings.Join(t.PrimaryKeys, ", ")))
		}
		for _, fk := range t.ForeignKeys {
			lines = append(lines, fmt.Sprintf("  Foreign Key: %s references %s", fk.Column, fk.References))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// CreateTableStatements renders tables as lowercase CREATE TABLE DDL.
func CreateTableStatements(tables []Table, filter []string) string {
	var stmts []string
	for _, t := range tables {
		if !includeTable(t.Name, filter) {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "create table %s (", t.Name)

		cols := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			cols = append(cols, fmt.Sprintf("%s %s", c.Name, strings.ToLower(c.Type)))
		}
		b.WriteString("\n" + strings.Join(cols, ",\n"))

		if len(t.PrimaryKeys) > 0 {
			fmt.Fprintf(&b, ",\nprimary key (%s)", strings.Join(t.PrimaryKeys, ", "))
		}
		for _, fk := range t.ForeignKeys {
			fmt.Fprintf(&b, ",\nforeign key (%s) references %s", fk.Column, fk.References)
		}
		b.WriteString("\n);")
		stmts = append(stmts, b.String())
	}
	return strings.Join(stmts, "\n")
}
