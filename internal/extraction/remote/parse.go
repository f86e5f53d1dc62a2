package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"requirement-extractor/internal/extraction"
)

var (
	remoteDefaultEntities = []string{"User", "Item"}
	remoteDefaultRoles    = []string{"Admin", "User"}
	remoteDefaultFeatures = []string{"Create Records", "View Data"}
)

// Parsed is a validated remote answer.
type Parsed struct {
	AppName string
	extraction.Attributes
}

// StripCodeFences removes a surrounding ``` or ```json fence, if present.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		if !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Parse decodes a completion into a validated result. Anything that is not a
// JSON object is ErrMalformedResponse. Fields with the wrong shape are replaced
// wholesale by defaults rather than filtered.
func Parse(raw string) (*Parsed, error) {
	body := StripCodeFences(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty completion", extraction.ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrMalformedResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", extraction.ErrMalformedResponse)
	}

	appName := extraction.DefaultAppName
	var name string
	if err := json.Unmarshal(fields["appName"], &name); err == nil && strings.TrimSpace(name) != "" {
		appName = strings.TrimSpace(name)
	}

	attrs := extraction.Normalize(extraction.Attributes{
		Entities: stringList(fields["entities"], remoteDefaultEntities),
		Roles:    stringList(fields["roles"], remoteDefaultRoles),
		Features: stringList(fields["features"], remoteDefaultFeatures),
	})

	return &Parsed{AppName: appName, Attributes: attrs}, nil
}

// stringList accepts only a JSON array whose every element is a string.
func stringList(raw json.RawMessage, fallback []string) []string {
	if len(raw) == 0 {
		return append([]string(nil), fallback...)
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return append([]string(nil), fallback...)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return append([]string(nil), fallback...)
		}
		out = append(out, s)
	}
	return out
}
