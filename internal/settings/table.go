package settings

import "strings"

// parseTable reads the block format:
//
//	API Management
//	Service Name<TAB>Type<TAB>...
//	---<TAB>---
//	apim-orders dev<TAB>Gateway<TAB>...
//
// A block's rows end at a blank line or at the next line without a tab,
// which starts the next block.
func parseTable(b *builder, content string) error {
	lines := splitLines(content)
	if countNonBlank(lines) < 2 {
		return ErrTooFewLines
	}

	for i := 0; i < len(lines); {
		l := lines[i]
		if strings.TrimSpace(l.text) == "" {
			i++
			continue
		}
		if isTableRow(l.text) {
			b.skip(l.n, "row outside a section")
			i++
			continue
		}

		name := strings.TrimSpace(l.text)
		b.section(name)
		i++
		if i >= len(lines) || !isTableRow(lines[i].text) {
			continue
		}
		headers := splitTabs(lines[i].text)
		i++
		if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i].text), "---") {
			i++
		}
		for ; i < len(lines); i++ {
			row := lines[i]
			if strings.TrimSpace(row.text) == "" || !isTableRow(row.text) {
				break
			}
			b.addRow(row.n, name, headers, splitTabs(row.text))
		}
	}
	return nil
}

func isTableRow(line string) bool {
	return strings.Contains(line, "\t")
}

func splitTabs(line string) []string {
	fields := strings.Split(line, "\t")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
