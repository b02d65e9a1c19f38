package settings

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rflorenc/azure-service-dashboard/internal/catalog"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// Header labels recognised in a settings document, lowercased.
const (
	colServiceName   = "service name"
	colType          = "type"
	colEnvironment   = "environment"
	colResourceGroup = "resource group"
	colLocation      = "location"
	colTier          = "tier"
	colRuntime       = "runtime"
	colDevPortal     = "dev portal"
	colStatus        = "status"
	colActions       = "actions"
	colSection       = "section"
)

var environmentTags = map[string]bool{
	"dev":        true,
	"test":       true,
	"prod":       true,
	"production": true,
	"staging":    true,
	"uat":        true,
	"qa":         true,
}

var (
	fieldPolicyOnce sync.Once
	fieldPolicy     *bluemonday.Policy
)

// textEntities are the escapes the sanitiser adds to plain text. Angle
// brackets stay escaped so a sanitised value can never turn back into markup.
var textEntities = strings.NewReplacer(
	"&amp;", "&",
	"&#34;", `"`,
	"&#39;", "'",
	"&quot;", `"`,
)

// cleanField strips any markup from a settings value, including markup
// hidden behind entities such as "&lt;script&gt;". Plain text is returned
// untouched so values like "R&D" survive.
func cleanField(raw string) string {
	v := strings.TrimSpace(raw)
	if !mayHoldMarkup(v) {
		return v
	}
	fieldPolicyOnce.Do(func() {
		fieldPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textEntities.Replace(fieldPolicy.Sanitize(html.UnescapeString(v))))
}

// mayHoldMarkup reports whether v has a tag or an escaped "<".
func mayHoldMarkup(v string) bool {
	if strings.ContainsRune(v, '<') {
		return true
	}
	lower := strings.ToLower(v)
	return strings.Contains(lower, "&lt") || strings.Contains(lower, "&#60") || strings.Contains(lower, "&#x3c")
}

// SplitEnvironment strips a trailing environment token from a service name.
// "api-orders dev" yields ("api-orders", "dev"); a name without a recognised
// trailing token is returned unchanged with an empty tag.
func SplitEnvironment(serviceName string) (name, env string) {
	tokens := strings.Fields(serviceName)
	if len(tokens) > 1 {
		last := strings.ToLower(tokens[len(tokens)-1])
		if environmentTags[last] {
			return strings.Join(tokens[:len(tokens)-1], " "), last
		}
	}
	return strings.TrimSpace(serviceName), ""
}

// IsEnvironmentTag reports whether tag is one of the recognised environments.
func IsEnvironmentTag(tag string) bool {
	return environmentTags[strings.ToLower(tag)]
}

// StatusClass maps status text to "running" or "stopped". Unrecognised
// values, including empty, count as running.
func StatusClass(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "offline", "disabled", "stopped":
		return models.StatusStopped
	default:
		return models.StatusRunning
	}
}

// MapRow turns one data row into a resource of sec, using headers to label
// the fields. It reports false if the row has fewer than two fields.
func MapRow(sec models.ServiceSection, headers, fields []string) (models.ResourceRecord, bool) {
	if len(fields) < 2 {
		return models.ResourceRecord{}, false
	}

	rec := models.ResourceRecord{
		Icon:        sec.Icon,
		StatusClass: models.StatusRunning,
	}
	var envOverride string

	for i, header := range headers {
		if i >= len(fields) {
			break
		}
		value := cleanField(fields[i])
		switch strings.ToLower(strings.TrimSpace(header)) {
		case colServiceName:
			rec.Name, rec.Environment = SplitEnvironment(value)
		case colType:
			rec.Type = value
		case colEnvironment:
			envOverride = strings.ToLower(value)
		case colResourceGroup:
			rec.ResourceGroup = value
		case colLocation:
			rec.Location = value
		case colTier, colRuntime:
			rec.TierRuntime = value
		case colDevPortal:
			if catalog.Is(sec.Name, catalog.APIManagement) {
				rec.Extra = value
			}
		case colStatus:
			rec.Status = value
			rec.StatusClass = StatusClass(value)
		case colActions, colSection:
		}
	}
	if envOverride != "" {
		rec.Environment = envOverride
	}

	switch {
	case catalog.Is(sec.Name, catalog.LogicApps):
		rec.Extra = rec.TierRuntime
		rec.TierRuntime = ""
	case catalog.Is(sec.Name, catalog.AzureFunctions):
		rec.Extra = ""
	}
	return rec, true
}
