package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "refs.json", `[
		{"question_id": 0, "db_id": "shop", "question": "How many users?", "SQL": "SELECT COUNT(*) FROM users", "difficulty": "simple"},
		{"question_id": 1, "db_id": "shop", "question": "Names?", "evidence": "name is users.name", "SQL": "SELECT name FROM users"}
	]`)

	recs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "shop", recs[0].DB)
	require.Equal(t, "SELECT COUNT(*) FROM users", recs[0].SQL)
	require.Equal(t, "name is users.name", recs[1].Evidence)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := writeFile(t, "bad.json", `{"not": "an array"}`)
	_, err = Load(bad)
	require.Error(t, err)
}

func TestLoadPairs(t *testing.T) {
	refs := writeFile(t, "refs.json", `[{"SQL": "SELECT 1"}, {"SQL": "SELECT 2"}]`)
	preds := writeFile(t, "preds.json", `[{"SQL": "SELECT 1"}, {"SQL": "SELECT 3"}]`)

	pairs, err := LoadPairs(refs, preds)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "SELECT 2", pairs[1].Reference.SQL)
	require.Equal(t, "SELECT 3", pairs[1].Predicted.SQL)
}

func TestLoadPairsLengthMismatch(t *testing.T) {
	refs := writeFile(t, "refs.json", `[{"SQL": "SELECT 1"}, {"SQL": "SELECT 2"}]`)
	preds := writeFile(t, "preds.json", `[{"SQL": "SELECT 1"}]`)

	_, err := LoadPairs(refs, preds)
	require.ErrorContains(t, err, "counts differ")
}
