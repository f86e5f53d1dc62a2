package extraction

import "strings"

const (
	MaxEntities = 8
	MaxRoles    = 6
	MaxFeatures = 10

	// BaseRole is appended when a role list ends up with a single other entry.
	BaseRole = "Admin"

	DefaultAppName = "Generated App"
)

var (
	minimumEntities = []string{"User", "Item", "Category"}
	minimumRoles    = []string{"Admin", "User"}
	minimumFeatures = []string{"Create Records", "View Data", "Manage Settings"}
)

// Attributes is the entity/role/feature triple produced by both extraction paths.
type Attributes struct {
	Entities []string `json:"entities"`
	Roles    []string `json:"roles"`
	Features []string `json:"features"`
}

func MinimumEntities() []string { return clone(minimumEntities) }
func MinimumRoles() []string    { return clone(minimumRoles) }
func MinimumFeatures() []string { return clone(minimumFeatures) }

// GenericAttributes is used when an archetype has no known defaults.
func GenericAttributes() Attributes {
	return Attributes{
		Entities: MinimumEntities(),
		Roles:    MinimumRoles(),
		Features: MinimumFeatures(),
	}
}

// Normalize dedups, truncates and back-fills every list. The input is not modified.
func Normalize(a Attributes) Attributes {
	return Attributes{
		Entities: populate(Truncate(Dedup(a.Entities), MaxEntities), minimumEntities),
		Roles:    ensureBaseRole(populate(Truncate(Dedup(a.Roles), MaxRoles), minimumRoles)),
		Features: populate(Truncate(Dedup(a.Features), MaxFeatures), minimumFeatures),
	}
}

// Dedup trims items, drops blanks and removes case-insensitive duplicates,
// keeping the first spelling seen.
func Dedup(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func Truncate(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

// ContainsFold reports whether any item contains sub, ignoring case.
func ContainsFold(items []string, sub string) bool {
	sub = strings.ToLower(sub)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), sub) {
			return true
		}
	}
	return false
}

func populate(items, minimum []string) []string {
	if len(items) == 0 {
		return clone(minimum)
	}
	return items
}

func ensureBaseRole(roles []string) []string {
	if len(roles) == 1 && !strings.EqualFold(roles[0], BaseRole) {
		return append(roles, BaseRole)
	}
	return roles
}

func clone(items []string) []string {
	return append([]string(nil), items...)
}
