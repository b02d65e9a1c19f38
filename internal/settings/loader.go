package settings

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rflorenc/azure-service-dashboard/internal/catalog"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// DefaultSections is served whenever a load fails: a single, empty
// "API Management" section.
func DefaultSections() []models.ServiceSection {
	return []models.ServiceSection{catalog.NewSection(catalog.APIManagement)}
}

// Result is the outcome of one load. Sections is always usable; Err is
// informational and set only when Fallback is true.
type Result struct {
	Sections []models.ServiceSection
	Skipped  []SkippedRow
	Fallback bool
	Err      error
}

// Loader fetches and parses the settings document.
type Loader struct {
	Fetcher Fetcher
	Format  Format
	Parser  *Parser
	Logger  zerolog.Logger
}

// Load runs one fetch-then-parse pass. It never fails: transport and
// structural errors are logged and replaced by DefaultSections. logf, if
// non-nil, receives human-readable progress lines.
func (l *Loader) Load(ctx context.Context, logf func(string)) Result {
	if logf == nil {
		logf = func(string) {}
	}
	source := l.Fetcher.Source()

	logf("Fetching settings from " + source)
	data, err := l.Fetcher.Fetch(ctx)
	if err != nil {
		return l.fallback(logf, source, fmt.Errorf("fetch settings: %w", err))
	}
	logf(fmt.Sprintf("Fetched %d bytes, parsing as %s", len(data), l.Format))

	parsed, err := l.Parser.Parse(l.Format, string(data))
	if err != nil {
		return l.fallback(logf, source, fmt.Errorf("parse settings: %w", err))
	}
	for _, s := range parsed.Skipped {
		logf(fmt.Sprintf("Skipped line %d: %s", s.Line, s.Reason))
	}

	resources := models.ResourceCount(parsed.Sections)
	logf(fmt.Sprintf("Loaded %d sections, %d resources", len(parsed.Sections), resources))
	l.Logger.Info().
		Str("event", "settings.load_ok").
		Str("source", source).
		Int("sections", len(parsed.Sections)).
		Int("resources", resources).
		Int("skipped", len(parsed.Skipped)).
		Msg("settings loaded")

	return Result{Sections: parsed.Sections, Skipped: parsed.Skipped}
}

func (l *Loader) fallback(logf func(string), source string, err error) Result {
	l.Logger.Error().
		Err(err).
		Str("event", "settings.load_failed").
		Str("source", source).
		Msg("using default sections")
	logf("ERROR: " + err.Error())
	logf("Using default sections")
	return Result{Sections: DefaultSections(), Fallback: true, Err: err}
}
