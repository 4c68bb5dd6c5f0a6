// Package sqlgen turns natural-language questions into PostgreSQL, given the
// schema of the target database as normalized CREATE TABLE statements.
package sqlgen

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces a SQL statement for a question against a schema.
type Generator interface {
	Model() string
	GenerateSQL(ctx context.Context, question string, schemaDDL string) (string, error)
}

// BuildPrompt renders the generation prompt: schema, question, and the
// instruction block steering the model toward exact column selection.
func BuildPrompt(question, schemaDDL string) string {
	return fmt.Sprintf(`You are a data science expert. Below, you are provided with a database schema and a natural language question. Your task is to understand the schema and generate a valid PostgreSQL query to answer the question.

Database Schema:
%s

Question:
%s

Instructions:
- Make sure you only output the information that is asked in the question. If the question asks for a specific column, make sure to only include that column in the SELECT clause, nothing more.
- The generated query should return all of the information asked in the question without any missing or extra information.
- Before generating the final SQL query, please think through the steps of how to write the query. Do all the explanation before generating the final query.
- Make sure to check the datatypes of the columns. For Example: if Date column has text datatype, do not use date functions on it, use string functions.
- If you think some table information is missing or the database schema provided has no relevance with the question, do not answer with any SQL query.

Take a deep breath and think step by step to find the correct SQL query.
`, schemaDDL, question)
}

// ExtractSQL pulls the final SQL statement out of a model completion. Models
// are prompted to reason first and emit the query last, so the last fenced
// code block wins; a completion without fences is returned trimmed as-is.
func ExtractSQL(completion string) string {
	s := completion
	var last string
	for {
		start := strings.Index(s, "```")
		if start < 0 {
			break
		}
		rest := s[start+3:]
		// Skip the language tag on the opening fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isFenceTag(rest[:nl]) {
			rest = rest[nl+1:]
		}
		end := strings.Index(rest, "```")
		if end < 0 {
			break
		}
		last = rest[:end]
		s = rest[end+3:]
	}
	if last != "" {
		return strings.TrimSpace(last)
	}
	return strings.TrimSpace(completion)
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		return false
	}
	return true
}
