package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rflorenc/azure-service-dashboard/internal/api"
	"github.com/rflorenc/azure-service-dashboard/internal/config"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
	"github.com/rflorenc/azure-service-dashboard/internal/settings"
)

func TestNewLoader(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantFormat settings.Format
		wantSource string
	}{
		{
			name:       "local csv",
			cfg:        config.Config{Settings: config.SettingsConfig{File: "settings.csv", Path: "/settings.csv"}},
			wantFormat: settings.FormatCSV,
			wantSource: "settings.csv",
		},
		{
			name:       "local table detected",
			cfg:        config.Config{Settings: config.SettingsConfig{File: "settings.txt", Path: "/settings.txt"}},
			wantFormat: settings.FormatTable,
			wantSource: "settings.txt",
		},
		{
			name: "remote with explicit format",
			cfg: config.Config{Settings: config.SettingsConfig{
				URL: "http://settings.internal", Path: "/settings.csv", Format: "table", Timeout: time.Second,
			}},
			wantFormat: settings.FormatTable,
			wantSource: "http://settings.internal/settings.csv",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := newLoader(&tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, l.Format)
			assert.Equal(t, tc.wantSource, l.Fetcher.Source())
		})
	}

	_, err := newLoader(&config.Config{Settings: config.SettingsConfig{File: "x.csv", Format: "xml"}})
	assert.Error(t, err)
}

func TestDevRouter_RoutesAPI(t *testing.T) {
	server := &api.Server{
		Sections: models.NewSectionStore(),
		Loads:    models.NewLoadStore(0),
	}
	rec := httptest.NewRecorder()
	devRouter(server).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sections", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
