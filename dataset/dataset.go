// Package dataset loads benchmark files: JSON arrays of question records in
// the BIRD mini-dev layout, paired by index into (reference, predicted)
// scoring units.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Record is one benchmark entry. Prediction files typically carry only SQL;
// the remaining fields stay at their zero values.
type Record struct {
	QuestionID int    `json:"question_id"`
	DB         string `json:"db_id"`
	Question   string `json:"question"`
	Evidence   string `json:"evidence"`
	SQL        string `json:"SQL"`
	Difficulty string `json:"difficulty"`
}

// Pair aligns a reference record with the prediction at the same index.
type Pair struct {
	Reference Record
	Predicted Record
}

// Load reads a JSON array of records from path.
func Load(path string) ([]Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out []Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// LoadPairs reads both files and aligns them by index. The two arrays must
// have the same length; a truncated prediction file is an input error, not
// something to silently zip over.
func LoadPairs(referencePath, predictedPath string) ([]Pair, error) {
	refs, err := Load(referencePath)
	if err != nil {
		return nil, err
	}
	preds, err := Load(predictedPath)
	if err != nil {
		return nil, err
	}
	if len(refs) != len(preds) {
		return nil, fmt.Errorf("reference and prediction counts differ: %d vs %d", len(refs), len(preds))
	}

	pairs := make([]Pair, len(refs))
	for i := range refs {
		pairs[i] = Pair{Reference: refs[i], Predicted: preds[i]}
	}
	return pairs, nil
}
