// Package settings loads the dashboard's section list from a delimited
// settings document.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rflorenc/azure-service-dashboard/internal/catalog"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// Format selects the settings document layout.
type Format string

const (
	// FormatCSV is a single comma-separated table whose first column is the
	// section name.
	FormatCSV Format = "csv"
	// FormatTable is a sequence of tab-separated tables, each preceded by a
	// section name line.
	FormatTable Format = "table"
)

var (
	// ErrTooFewLines is returned when a document lacks a header and a row.
	ErrTooFewLines = errors.New("settings: fewer than 2 non-blank lines")
	// ErrNoSections is returned when no section could be built.
	ErrNoSections = errors.New("settings: no sections found")
)

// ParseFormat validates a configured format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatTable:
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown settings format %q (want csv or table)", s)
	}
}

// DetectFormat guesses the format from a file name: .txt and .tsv are
// tables, everything else is CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".tsv":
		return FormatTable
	default:
		return FormatCSV
	}
}

// SkippedRow describes a data line that produced no resource.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Parsed is the outcome of a successful parse.
type Parsed struct {
	Sections []models.ServiceSection
	Skipped  []SkippedRow
}

// Parser turns settings text into sections.
type Parser struct {
	Links  catalog.LinkBuilder
	Logger zerolog.Logger
}

// byteOrderMark is written at the start of files saved by Excel and Notepad.
const byteOrderMark = "\ufeff"

// Parse reads content in the given format. Sections appear in the order
// their names are first seen.
func (p *Parser) Parse(format Format, content string) (*Parsed, error) {
	content = strings.TrimPrefix(content, byteOrderMark)
	b := newBuilder(p.Links)
	var err error
	switch format {
	case FormatTable:
		err = parseTable(b, content)
	default:
		err = parseCSV(b, content)
	}
	if err != nil {
		return nil, err
	}
	for _, s := range b.skipped {
		p.Logger.Warn().
			Str("event", "settings.row_skipped").
			Int("line", s.Line).
			Str("reason", s.Reason).
			Msg("skipping settings row")
	}
	if len(b.sections) == 0 {
		return nil, ErrNoSections
	}
	return &Parsed{Sections: b.sections, Skipped: b.skipped}, nil
}

// builder accumulates sections during one parse pass.
type builder struct {
	links    catalog.LinkBuilder
	sections []models.ServiceSection
	index    map[string]int
	skipped  []SkippedRow
}

func newBuilder(links catalog.LinkBuilder) *builder {
	return &builder{links: links, index: make(map[string]int)}
}

func (b *builder) section(name string) *models.ServiceSection {
	if i, ok := b.index[name]; ok {
		return &b.sections[i]
	}
	b.sections = append(b.sections, catalog.NewSection(name))
	b.index[name] = len(b.sections) - 1
	return &b.sections[len(b.sections)-1]
}

func (b *builder) addRow(line int, sectionName string, headers, fields []string) {
	if len(fields) < 2 {
		b.skip(line, "fewer than 2 fields")
		return
	}
	sec := b.section(sectionName)
	rec, _ := MapRow(*sec, headers, fields)
	rec.PortalURL = b.links.PortalURL(sec.Name, rec.ResourceGroup, rec.Name)
	sec.Resources = append(sec.Resources, rec)
}

func (b *builder) skip(line int, reason string) {
	b.skipped = append(b.skipped, SkippedRow{Line: line, Reason: reason})
}

// numberedLine is a raw line with its 1-based position in the document.
type numberedLine struct {
	n    int
	text string
}

func splitLines(content string) []numberedLine {
	raw := strings.Split(content, "\n")
	lines := make([]numberedLine, len(raw))
	for i, l := range raw {
		lines[i] = numberedLine{n: i + 1, text: strings.TrimRight(l, "\r")}
	}
	return lines
}

func countNonBlank(lines []numberedLine) int {
	n := 0
	for _, l := range lines {
		if strings.TrimSpace(l.text) != "" {
			n++
		}
	}
	return n
}
