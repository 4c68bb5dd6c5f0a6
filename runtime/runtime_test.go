package runtime

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/doujins-org/sqlevalkit/dataset"
	"github.com/doujins-org/sqlevalkit/eval"
	"github.com/doujins-org/sqlevalkit/resultset"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func staticExecutor(results map[string]*eval.Result) eval.Executor {
	return eval.ExecutorFunc(func(_ context.Context, sqlText string) (*eval.Result, error) {
		if res, ok := results[sqlText]; ok {
			return res, nil
		}
		return nil, fmt.Errorf("unknown statement %q", sqlText)
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error for missing executor")
	}
	exec := staticExecutor(nil)
	if _, err := New(Options{Executor: exec, Generator: stubGenerator{}}); err == nil {
		t.Fatalf("expected error for generator without inspector")
	}
	if _, err := New(Options{Executor: exec}); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestEvaluatePairs(t *testing.T) {
	one := &eval.Result{
		Columns:  []string{"n"},
		Rows:     []resultset.Row{{resultset.IntValue(1)}},
		RowCount: 1,
	}
	two := &eval.Result{
		Columns:  []string{"n"},
		Rows:     []resultset.Row{{resultset.IntValue(2)}},
		RowCount: 1,
	}
	rt, err := New(Options{
		Executor: staticExecutor(map[string]*eval.Result{"ref": one, "good": one, "bad": two}),
		Logger:   discardLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rep, err := rt.EvaluatePairs(context.Background(), []dataset.Pair{
		{Reference: dataset.Record{SQL: "ref"}, Predicted: dataset.Record{SQL: "good"}},
		{Reference: dataset.Record{SQL: "ref"}, Predicted: dataset.Record{SQL: "bad"}},
		{Reference: dataset.Record{SQL: "ref"}, Predicted: dataset.Record{SQL: "broken"}},
	})
	if err != nil {
		t.Fatalf("EvaluatePairs: %v", err)
	}
	if rep.Total != 3 || rep.Correct != 1 {
		t.Fatalf("expected 1/3, got %d/%d", rep.Correct, rep.Total)
	}
}

type stubGenerator struct {
	sql string
	err error
}

func (g stubGenerator) Model() string { return "stub" }

func (g stubGenerator) GenerateSQL(context.Context, string, string) (string, error) {
	return g.sql, g.err
}

func TestAnswerWithoutGenerator(t *testing.T) {
	rt, err := New(Options{Executor: staticExecutor(nil), Logger: discardLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := rt.Answer(context.Background(), "How many users?", nil); err == nil {
		t.Fatalf("expected error when no generator is configured")
	}
}
