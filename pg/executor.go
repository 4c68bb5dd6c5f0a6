package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doujins-org/sqlevalkit/eval"
)

type ExecutorOptions struct {
	// StatementTimeout bounds each statement server-side via SET LOCAL.
	// Defaults to 10s.
	StatementTimeout time.Duration
}

func (o *ExecutorOptions) withDefaults() ExecutorOptions {
	out := *o
	if out.StatementTimeout <= 0 {
		out.StatementTimeout = 10 * time.Second
	}
	return out
}

// Executor runs SELECT statements against Postgres and converts rows into
// comparable values. Every statement runs inside a read-only transaction with
// a server-side statement_timeout, so the textual gate in IsReadOnly is a
// fast path, not the safety boundary.
type Executor struct {
	pool *pgxpool.Pool
	opts ExecutorOptions
}

var _ eval.Executor = (*Executor)(nil)

func NewExecutor(pool *pgxpool.Pool, opts ExecutorOptions) (*Executor, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Executor{pool: pool, opts: opts.withDefaults()}, nil
}

func (e *Executor) Execute(ctx context.Context, sqlText string) (*eval.Result, error) {
	if !IsReadOnly(sqlText) {
		return nil, fmt.Errorf("query not supported")
	}

	tx, err := e.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read-only tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	timeoutMS := int64(e.opts.StatementTimeout / time.Millisecond)
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", timeoutMS)); err != nil {
		return nil, fmt.Errorf("set statement_timeout: %w", err)
	}

	rows, err := tx.Query(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	result := &eval.Result{Columns: columns}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, FromAnyRow(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result.RowCount = len(result.Rows)
	return result, nil
}
