package models

// Status classes derived from a resource's status text.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

// ServiceSection is a named group of resources, e.g. "API Management".
type ServiceSection struct {
	Name            string           `json:"name"`
	Icon            string           `json:"icon"`
	Type            string           `json:"type"` // slug: lowercase name, spaces removed
	Expanded        bool             `json:"expanded"`
	ShowExtraColumn bool             `json:"show_extra_column"`
	Headers         []string         `json:"headers"`
	Resources       []ResourceRecord `json:"resources"`
}

// ResourceRecord is one row of a section.
type ResourceRecord struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Type          string `json:"type"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
	TierRuntime   string `json:"tier_runtime"`
	// Extra holds the dev portal for API Management and the environment
	// label for Logic Apps; unused elsewhere.
	Extra       string `json:"extra"`
	Status      string `json:"status"`
	StatusClass string `json:"status_class"` // "running" or "stopped"
	Environment string `json:"environment"`
	PortalURL   string `json:"portal_url"`
}

// ResourceCount returns the number of resources across all sections.
func ResourceCount(sections []ServiceSection) int {
	n := 0
	for _, s := range sections {
		n += len(s.Resources)
	}
	return n
}
