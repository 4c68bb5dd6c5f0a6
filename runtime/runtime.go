package runtime

import (
	"context"
	"fmt"
	"log"

	"github.com/doujins-org/sqlevalkit/dataset"
	"github.com/doujins-org/sqlevalkit/eval"
	"github.com/doujins-org/sqlevalkit/pg"
	"github.com/doujins-org/sqlevalkit/sqlgen"
)

type Options struct {
	// Executor runs the SQL under evaluation. Required.
	Executor eval.Executor

	// Generator produces SQL from questions. Optional; required only for
	// Answer. When set, Inspector must be set too so prompts can embed the
	// live schema.
	Generator sqlgen.Generator
	Inspector *pg.Inspector

	// Logger receives per-pair progress lines. Defaults to the standard
	// logger.
	Logger *log.Logger

	// Concurrency bounds parallel pair scoring; <= 1 runs sequentially.
	Concurrency int
}

// Runtime wires the executor, the schema inspector, and the SQL generator
// behind the two host-facing flows: scoring a benchmark and answering a
// question against the live database.
type Runtime struct {
	executor    eval.Executor
	generator   sqlgen.Generator
	inspector   *pg.Inspector
	logger      *log.Logger
	concurrency int
}

func New(opts Options) (*Runtime, error) {
	if opts.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if opts.Generator != nil && opts.Inspector == nil {
		return nil, fmt.Errorf("generator provided but inspector missing")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runtime{
		executor:    opts.Executor,
		generator:   opts.Generator,
		inspector:   opts.Inspector,
		logger:      logger,
		concurrency: opts.Concurrency,
	}, nil
}

// EvaluatePairs scores every (reference, predicted) pair and returns the
// final counters, logging a running accuracy line per pair and a final
// summary. Execution failures count against accuracy but never abort the
// batch.
func (r *Runtime) EvaluatePairs(ctx context.Context, pairs []dataset.Pair) (eval.Report, error) {
	runner, err := eval.NewRunner(r.executor, eval.RunnerOptions{
		Concurrency: r.concurrency,
		OnProgress: func(rep eval.Report) {
			r.logger.Printf("ACCURACY: %s", rep)
		},
	})
	if err != nil {
		return eval.Report{}, err
	}

	evalPairs := make([]eval.Pair, len(pairs))
	for i, p := range pairs {
		evalPairs[i] = eval.Pair{Reference: p.Reference.SQL, Predicted: p.Predicted.SQL}
	}

	rep, err := runner.Run(ctx, evalPairs)
	if err != nil {
		return rep, err
	}
	r.logger.Printf("FINAL ACCURACY: %s", rep)
	return rep, nil
}

// Answer generates SQL for a natural-language question using the schema of
// the tables in filter (nil means all tables), executes it, and returns both
// the statement and its result. When execution fails the generated statement
// is still returned alongside the error.
func (r *Runtime) Answer(ctx context.Context, question string, filter []string) (string, *eval.Result, error) {
	if r.generator == nil {
		return "", nil, fmt.Errorf("generator not configured")
	}
	ddl, err := r.inspector.CreateStatements(ctx, filter)
	if err != nil {
		return "", nil, fmt.Errorf("load schema: %w", err)
	}
	sqlText, err := r.generator.GenerateSQL(ctx, question, ddl)
	if err != nil {
		return "", nil, fmt.Errorf("generate sql: %w", err)
	}
	if sqlText == "" {
		return "", nil, fmt.Errorf("model produced no sql")
	}
	res, err := r.executor.Execute(ctx, sqlText)
	if err != nil {
		return sqlText, nil, err
	}
	return sqlText, res, nil
}
