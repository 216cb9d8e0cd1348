// statement/tokenizer.go
package statement

import "strings"

// Tokenize splits a single statement line on commas, honoring double-quoted
// fields. A comma inside a quoted span is literal, and a doubled quote ("")
// inside a quoted span is an escaped quote character. An unterminated quote
// consumes the rest of the line. Each token is trimmed of surrounding
// whitespace.
func Tokenize(line string) []string {
	var tokens []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// escaped quote
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			tokens = append(tokens, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	tokens = append(tokens, strings.TrimSpace(field.String()))
	return tokens
}

// TokenizeAll splits a statement blob into lines and tokenizes each one.
// Blank lines are preserved as empty token lists so that section boundaries
// fall where the broker put them.
func TokenizeAll(content string) [][]string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	out := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, nil)
			continue
		}
		out = append(out, Tokenize(line))
	}
	return out
}
