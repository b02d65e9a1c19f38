package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// PlaceholderURL is returned when a link cannot be built.
const PlaceholderURL = "#"

const portalTemplate = "https://portal.azure.com/#@%s/resource/subscriptions/%s/resourceGroups/%s/providers/%s/%s/overview"

// Resource groups containing any of these go to the secondary subscription.
var secondaryGroupMarkers = []string{"hcm", "datafactory", "adf"}

// LinkBuilder builds Azure portal deep links. All values come from
// configuration.
type LinkBuilder struct {
	TenantDomain          string
	PrimarySubscription   string
	SecondarySubscription string
}

// SubscriptionFor picks the subscription that owns a resource.
func (b LinkBuilder) SubscriptionFor(section, resourceGroup string) string {
	if strings.Contains(key(section), "data factory") {
		return b.SecondarySubscription
	}
	rg := key(resourceGroup)
	for _, marker := range secondaryGroupMarkers {
		if strings.Contains(rg, marker) {
			return b.SecondarySubscription
		}
	}
	return b.PrimarySubscription
}

// Configured reports whether links can be built at all.
func (b LinkBuilder) Configured() bool {
	return strings.TrimSpace(b.TenantDomain) != "" && strings.TrimSpace(b.PrimarySubscription) != ""
}

// PortalURL returns the overview link for a resource, or "#" if any of
// section, resourceGroup or name is blank, or if the tenant or the owning
// subscription is not configured.
func (b LinkBuilder) PortalURL(section, resourceGroup, name string) string {
	section = strings.TrimSpace(section)
	resourceGroup = strings.TrimSpace(resourceGroup)
	name = strings.TrimSpace(name)
	if section == "" || resourceGroup == "" || name == "" {
		return PlaceholderURL
	}
	tenant := strings.TrimSpace(b.TenantDomain)
	subscription := strings.TrimSpace(b.SubscriptionFor(section, resourceGroup))
	if tenant == "" || subscription == "" {
		return PlaceholderURL
	}
	return fmt.Sprintf(portalTemplate,
		url.PathEscape(tenant),
		url.PathEscape(subscription),
		url.PathEscape(resourceGroup),
		ResourceTypeFor(section),
		url.PathEscape(name),
	)
}
