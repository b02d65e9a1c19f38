package settings

import (
	"fmt"
	"strings"
)

// SplitCSVLine splits one line of the settings CSV dialect: a '"' toggles
// quoting and is dropped, ',' separates fields only outside quotes, and
// every field is trimmed. Doubled quotes have no escape meaning.
func SplitCSVLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// parseCSV reads the flat format: a global header followed by rows whose
// first column names the section.
func parseCSV(b *builder, content string) error {
	var lines []numberedLine
	for _, l := range splitLines(content) {
		if strings.TrimSpace(l.text) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return ErrTooFewLines
	}

	headers := SplitCSVLine(lines[0].text)
	for _, l := range lines[1:] {
		fields := SplitCSVLine(l.text)
		if len(fields) != len(headers) {
			b.skip(l.n, fmt.Sprintf("has %d fields, header has %d", len(fields), len(headers)))
			continue
		}
		if fields[0] == "" {
			b.skip(l.n, "missing section name")
			continue
		}
		b.addRow(l.n, fields[0], headers, fields)
	}
	return nil
}
