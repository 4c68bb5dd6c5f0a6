package pg

import "strings"

// IsReadOnly reports whether sqlText looks like a single SELECT statement
// (optionally introduced by WITH). Leading whitespace, line comments, and
// block comments are skipped before the first keyword is inspected; a
// semicolon anywhere but the tail rejects the text as a multi-statement
// batch. The read-only transaction in Executor remains the hard guarantee.
func IsReadOnly(sqlText string) bool {
	body := stripLeading(sqlText)
	if body == "" {
		return false
	}

	word := leadingWord(body)
	switch strings.ToUpper(word) {
	case "SELECT", "WITH":
	default:
		return false
	}

	trimmed := strings.TrimRight(strings.TrimSpace(sqlText), ";")
	return !strings.Contains(trimmed, ";")
}

// stripLeading removes whitespace and SQL comments from the front of s.
func stripLeading(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return ""
			}
			s = s[idx+2:]
		default:
			return s
		}
	}
}

func leadingWord(s string) string {
	for i, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		return s[:i]
	}
	return s
}
