package eval

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/doujins-org/sqlevalkit/resultset"
)

// Result is a successful query execution: column names, rows, and row count.
type Result struct {
	Columns  []string
	Rows     []resultset.Row
	RowCount int
}

// Executor runs a SQL statement and returns its result set, or an error when
// the statement was rejected, timed out, or otherwise produced no data.
// Implementations own connection pooling, timeouts, and read-only
// enforcement.
type Executor interface {
	Execute(ctx context.Context, sqlText string) (*Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, sqlText string) (*Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, sqlText string) (*Result, error) {
	return f(ctx, sqlText)
}

// Pair is one scoring unit: a reference statement and the predicted statement
// being graded against it.
type Pair struct {
	Reference string
	Predicted string
}

// Report carries the running accuracy counters. Total counts every evaluated
// pair; Correct counts pairs where both executions succeeded and the result
// sets were equivalent.
type Report struct {
	Correct int
	Total   int
}

// Accuracy returns Correct/Total rounded to 3 decimal digits, ties to even.
// A report with no evaluated pairs has accuracy 0.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return math.RoundToEven(float64(r.Correct)/float64(r.Total)*1000) / 1000
}

// String formats the report as "<correct>/<total> = <accuracy>".
func (r Report) String() string {
	return fmt.Sprintf("%d/%d = %s", r.Correct, r.Total, strconv.FormatFloat(r.Accuracy(), 'g', -1, 64))
}

type RunnerOptions struct {
	// Concurrency bounds how many pairs are scored at once. Values <= 1 run
	// the dataset strictly sequentially in order.
	Concurrency int

	// OnProgress, when set, receives a counter snapshot after each pair.
	// Under concurrent runs snapshots are monotone but may not arrive in
	// dataset order.
	OnProgress func(Report)
}

// Runner drives (reference, predicted) pairs through an Executor and
// accumulates accuracy. Per-pair failures are absorbed: an execution error on
// either side counts the pair as incorrect and the batch continues.
type Runner struct {
	exec Executor
	opts RunnerOptions
}

func NewRunner(exec Executor, opts RunnerOptions) (*Runner, error) {
	if exec == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Runner{exec: exec, opts: opts}, nil
}

// Run scores every pair and returns the final counters. The only error Run
// returns is ctx cancellation, checked between pairs; everything else is
// absorbed into the counters.
func (r *Runner) Run(ctx context.Context, pairs []Pair) (Report, error) {
	if r.opts.Concurrency <= 1 {
		return r.runSequential(ctx, pairs)
	}
	return r.runConcurrent(ctx, pairs)
}

func (r *Runner) runSequential(ctx context.Context, pairs []Pair) (Report, error) {
	var rep Report
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		correct := r.scorePair(ctx, p)
		rep.Total++
		if correct {
			rep.Correct++
		}
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(rep)
		}
	}
	return rep, nil
}

func (r *Runner) runConcurrent(ctx context.Context, pairs []Pair) (Report, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	var mu sync.Mutex
	var rep Report
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			correct := r.scorePair(gctx, p)

			mu.Lock()
			rep.Total++
			if correct {
				rep.Correct++
			}
			snapshot := rep
			mu.Unlock()

			if r.opts.OnProgress != nil {
				r.opts.OnProgress(snapshot)
			}
			return nil
		})
	}
	err := g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return rep, err
}

// scorePair executes both statements and compares the results. Both sides are
// always executed; a failure on either makes the pair incorrect.
func (r *Runner) scorePair(ctx context.Context, p Pair) bool {
	ref, refErr := r.exec.Execute(ctx, p.Reference)
	pred, predErr := r.exec.Execute(ctx, p.Predicted)
	if refErr != nil || predErr != nil || ref == nil || pred == nil {
		return false
	}
	return Equivalent(resultset.FromRows(ref.Rows), resultset.FromRows(pred.Rows))
}
