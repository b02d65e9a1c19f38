// Package dashboard embeds the static frontend served by cmd/dashboard.
package dashboard

import "embed"

// WebFS holds the built frontend under web/dist.
//
//go:embed web/dist
var WebFS embed.FS
