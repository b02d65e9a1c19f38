package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rflorenc/azure-service-dashboard/internal/catalog"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

func TestSplitEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantEnv  string
	}{
		{"api-kohler-dev2 dev", "api-kohler-dev2", "dev"},
		{"resource-xyz", "resource-xyz", ""},
		{"orders-api PROD", "orders-api", "prod"},
		{"orders-api Production", "orders-api", "production"},
		{"billing  uat", "billing", "uat"},
		{"billing qa", "billing", "qa"},
		{"billing staging", "billing", "staging"},
		{"billing test", "billing", "test"},
		{"dev", "dev", ""},
		{"dev orders", "dev orders", ""},
		{"orders development", "orders development", ""},
		{"", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			name, env := SplitEnvironment(tc.input)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantEnv, env)
		})
	}
}

func TestStatusClass(t *testing.T) {
	running := []string{"online", "Enabled", "RUNNING", "", "degraded", "unknown"}
	stopped := []string{"offline", "Disabled", "STOPPED", " stopped "}
	for _, s := range running {
		assert.Equal(t, models.StatusRunning, StatusClass(s), "status %q", s)
	}
	for _, s := range stopped {
		assert.Equal(t, models.StatusStopped, StatusClass(s), "status %q", s)
	}
}

func TestIsEnvironmentTag(t *testing.T) {
	assert.True(t, IsEnvironmentTag("DEV"))
	assert.True(t, IsEnvironmentTag("production"))
	assert.False(t, IsEnvironmentTag("preprod"))
	assert.False(t, IsEnvironmentTag(""))
}

func TestMapRow_APIManagement(t *testing.T) {
	sec := catalog.NewSection(catalog.APIManagement)
	headers := []string{"Service Name", "Type", "Resource Group", "Location", "Tier", "Dev Portal", "Status", "Actions"}
	fields := []string{"apim-orders dev", "Gateway", "rg-integration", "West Europe", "Premium", "https://portal.contoso.dev", "Online", "view"}

	rec, ok := MapRow(sec, headers, fields)
	assert.True(t, ok)
	assert.Equal(t, models.ResourceRecord{
		Name:          "apim-orders",
		Icon:          sec.Icon,
		Type:          "Gateway",
		ResourceGroup: "rg-integration",
		Location:      "West Europe",
		TierRuntime:   "Premium",
		Extra:         "https://portal.contoso.dev",
		Status:        "Online",
		StatusClass:   models.StatusRunning,
		Environment:   "dev",
	}, rec)
}

func TestMapRow_HeaderCaseInsensitive(t *testing.T) {
	sec := catalog.NewSection("Key Vault")
	rec, ok := MapRow(sec, []string{"SERVICE NAME", "resource group", "STATUS"}, []string{"kv-main", "rg-sec", "Disabled"})
	assert.True(t, ok)
	assert.Equal(t, "kv-main", rec.Name)
	assert.Equal(t, "rg-sec", rec.ResourceGroup)
	assert.Equal(t, models.StatusStopped, rec.StatusClass)
}

func TestMapRow_DevPortalOnlyForAPIManagement(t *testing.T) {
	sec := catalog.NewSection("Key Vault")
	rec, _ := MapRow(sec, []string{"Service Name", "Dev Portal"}, []string{"kv-main", "https://portal"})
	assert.Empty(t, rec.Extra)
}

func TestMapRow_EnvironmentColumnOverrides(t *testing.T) {
	sec := catalog.NewSection("Key Vault")
	headers := []string{"Environment", "Service Name"}

	rec, _ := MapRow(sec, headers, []string{"STAGING", "kv-main dev"})
	assert.Equal(t, "kv-main", rec.Name)
	assert.Equal(t, "staging", rec.Environment)

	rec, _ = MapRow(sec, headers, []string{"", "kv-main dev"})
	assert.Equal(t, "dev", rec.Environment, "empty environment column keeps the derived tag")
}

func TestMapRow_TierRuntimeLastWins(t *testing.T) {
	sec := catalog.NewSection("App Service")
	rec, _ := MapRow(sec, []string{"Service Name", "Tier", "Runtime"}, []string{"app", "S1", "dotnet8"})
	assert.Equal(t, "dotnet8", rec.TierRuntime)

	rec, _ = MapRow(sec, []string{"Service Name", "Runtime", "Tier"}, []string{"app", "dotnet8", "S1"})
	assert.Equal(t, "S1", rec.TierRuntime)
}

func TestMapRow_LogicAppsMovesTierToExtra(t *testing.T) {
	sec := catalog.NewSection(catalog.LogicApps)
	rec, ok := MapRow(sec, []string{"Service Name", "Tier", "Status"}, []string{"la-orders prod", "Standard", "Enabled"})
	assert.True(t, ok)
	assert.Equal(t, "Standard", rec.Extra)
	assert.Empty(t, rec.TierRuntime)
	assert.Equal(t, "prod", rec.Environment)
}

func TestMapRow_AzureFunctionsClearsExtra(t *testing.T) {
	sec := catalog.NewSection(catalog.AzureFunctions)
	rec, ok := MapRow(sec, []string{"Service Name", "Runtime", "Dev Portal"}, []string{"func-orders", "python", "ignored"})
	assert.True(t, ok)
	assert.Empty(t, rec.Extra)
	assert.Equal(t, "python", rec.TierRuntime)
}

func TestMapRow_DefaultsAndShortRows(t *testing.T) {
	sec := catalog.NewSection("Key Vault")

	_, ok := MapRow(sec, []string{"Service Name"}, []string{"kv-main"})
	assert.False(t, ok, "rows with fewer than 2 fields are dropped")

	rec, ok := MapRow(sec, []string{"Service Name", "Type"}, []string{"kv-main", "Vault", "extra"})
	assert.True(t, ok)
	assert.Equal(t, models.StatusRunning, rec.StatusClass, "missing status defaults to running")
	assert.Equal(t, "Vault", rec.Type)

	rec, ok = MapRow(sec, []string{"Service Name", "Type", "Location"}, []string{"kv-main", "Vault"})
	assert.True(t, ok)
	assert.Empty(t, rec.Location, "headers beyond the row are ignored")
}

func TestCleanField(t *testing.T) {
	assert.Equal(t, "apim-orders", cleanField("<b>apim-orders</b>"))
	assert.Equal(t, "R&D", cleanField("R&D"))
	assert.Equal(t, "plain", cleanField("  plain "))
	assert.Equal(t, "", cleanField(`<img src=x onerror="alert(1)">`))
	assert.Equal(t, "R&D team", cleanField("<i>R&D</i> team"))
	assert.Equal(t, "Bob's app", cleanField("<b>Bob's</b> app"))
	assert.Equal(t, "https://dev.portal/?a=1&region=eu", cleanField("https://dev.portal/?a=1&region=eu"))

	for _, raw := range []string{
		"<b></b>&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;img src=x onerror=alert(1)&gt;",
		"&#60;script&#62;alert(1)&#60;/script&#62;",
		"&amp;lt;b&amp;gt;bold",
		"a < b",
	} {
		got := cleanField(raw)
		assert.NotContains(t, got, "<", "cleanField(%q) = %q", raw, got)
		assert.NotContains(t, got, ">", "cleanField(%q) = %q", raw, got)
	}
}
