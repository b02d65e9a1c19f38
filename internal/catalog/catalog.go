// Package catalog holds the static per-section lookup tables: icons,
// display headers and Azure resource types.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// Well-known section names.
const (
	APIManagement  = "API Management"
	LogicApps      = "Logic Apps"
	AzureFunctions = "Azure Functions"
	DataFactory    = "Data Factory"
)

// DefaultIcon is used for sections not listed in the icon table.
const DefaultIcon = "📦"

// DefaultResourceType is the portal resource type for unknown sections.
const DefaultResourceType = "Microsoft.Resources/resourceGroups"

var lower = cases.Lower(language.Und)

var icons = map[string]string{
	"api management":   "🔌",
	"logic apps":       "⚡",
	"azure functions":  "λ",
	"data factory":     "🏭",
	"app service":      "🌐",
	"storage accounts": "🗄️",
	"key vault":        "🔑",
	"service bus":      "📨",
	"sql database":     "🛢️",
	"cosmos db":        "🪐",
}

var headers = map[string][]string{
	"api management":  {"Service Name", "Type", "Resource Group", "Location", "Tier", "Dev Portal", "Status", "Actions"},
	"logic apps":      {"Service Name", "Type", "Resource Group", "Location", "Environment", "Status", "Actions"},
	"azure functions": {"Service Name", "Type", "Resource Group", "Location", "Runtime", "Status", "Actions"},
}

var genericHeaders = []string{"Service Name", "Type", "Resource Group", "Location", "Tier", "Status", "Actions"}

var resourceTypes = map[string]string{
	"api management":   "Microsoft.ApiManagement/service",
	"logic apps":       "Microsoft.Logic/workflows",
	"azure functions":  "Microsoft.Web/sites",
	"app service":      "Microsoft.Web/sites",
	"data factory":     "Microsoft.DataFactory/factories",
	"storage accounts": "Microsoft.Storage/storageAccounts",
	"key vault":        "Microsoft.KeyVault/vaults",
	"service bus":      "Microsoft.ServiceBus/namespaces",
	"sql database":     "Microsoft.Sql/servers",
	"cosmos db":        "Microsoft.DocumentDB/databaseAccounts",
}

func key(name string) string {
	return lower.String(strings.TrimSpace(name))
}

// Is reports whether name is the given section, ignoring case.
func Is(name, section string) bool {
	return key(name) == key(section)
}

// IconFor returns the glyph for a section name.
func IconFor(name string) string {
	if icon, ok := icons[key(name)]; ok {
		return icon
	}
	return DefaultIcon
}

// TypeSlug lowercases name and removes spaces: "API Management" -> "apimanagement".
func TypeSlug(name string) string {
	return strings.ReplaceAll(lower.String(name), " ", "")
}

// HeadersFor returns a copy of the display headers for a section.
func HeadersFor(name string) []string {
	h, ok := headers[key(name)]
	if !ok {
		h = genericHeaders
	}
	out := make([]string, len(h))
	copy(out, h)
	return out
}

// ResourceTypeFor returns the ARM resource type path used in portal links.
func ResourceTypeFor(name string) string {
	if t, ok := resourceTypes[key(name)]; ok {
		return t
	}
	return DefaultResourceType
}

// NewSection builds an empty section the first time its name is seen.
func NewSection(name string) models.ServiceSection {
	return models.ServiceSection{
		Name:            name,
		Icon:            IconFor(name),
		Type:            TypeSlug(name),
		Expanded:        true,
		ShowExtraColumn: Is(name, APIManagement),
		Headers:         HeadersFor(name),
		Resources:       []models.ResourceRecord{},
	}
}
