// Package sqlevalkit scores machine-generated SQL against reference SQL by
// executing both against the same Postgres database and comparing the data
// they return, tolerant of formatting differences (case, boolean spelling,
// numeric precision, extra or missing columns).
//
// The sub-packages compose like this: pg executes statements and introspects
// the schema, resultset canonicalizes raw cells and rows into comparable
// sets, eval decides equivalence per pair and accumulates accuracy, dataset
// loads the benchmark files, and sqlgen produces candidate SQL from natural
// language. The runtime package wires them for hosts that want a single
// object; EvaluateFiles below is the shortcut for the common batch-scoring
// run.
package sqlevalkit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doujins-org/sqlevalkit/dataset"
	"github.com/doujins-org/sqlevalkit/eval"
	"github.com/doujins-org/sqlevalkit/pg"
)

type EvaluateOptions struct {
	// StatementTimeout bounds each executed statement server-side.
	// Defaults to 10s.
	StatementTimeout time.Duration

	// Concurrency bounds parallel pair scoring; <= 1 runs sequentially in
	// dataset order.
	Concurrency int

	// OnProgress, when set, receives the running counters after each pair.
	OnProgress func(eval.Report)
}

// EvaluateFiles is the recommended entrypoint for scoring a predictions file
// against a reference file. Both are JSON arrays of records aligned by
// index; every pair is executed against the database behind pool and
// compared. Per-pair execution failures count as incorrect and never abort
// the run.
func EvaluateFiles(ctx context.Context, pool *pgxpool.Pool, referencePath, predictedPath string, opts EvaluateOptions) (eval.Report, error) {
	pairs, err := dataset.LoadPairs(referencePath, predictedPath)
	if err != nil {
		return eval.Report{}, err
	}

	exec, err := pg.NewExecutor(pool, pg.ExecutorOptions{StatementTimeout: opts.StatementTimeout})
	if err != nil {
		return eval.Report{}, err
	}

	runner, err := eval.NewRunner(exec, eval.RunnerOptions{
		Concurrency: opts.Concurrency,
		OnProgress:  opts.OnProgress,
	})
	if err != nil {
		return eval.Report{}, err
	}

	evalPairs := make([]eval.Pair, len(pairs))
	for i, p := range pairs {
		evalPairs[i] = eval.Pair{Reference: p.Reference.SQL, Predicted: p.Predicted.SQL}
	}
	return runner.Run(ctx, evalPairs)
}
