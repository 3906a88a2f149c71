// Package record holds country data records and the validated accessor that
// resolves metric ids to raw field values. Records are read-only to the
// scoring core.
package record

import "strings"

// Record is one country's raw indicator data. Fields is an open map keyed
// by field name or dotted path, owned by the external data layer.
type Record struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Fields map[string]any `yaml:"fields"`
}

// DisplayName returns the country's name, falling back to its id.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Lookup resolves a field key against the record. A key containing dots is
// first tried literally, then as a path into nested maps.
func (r Record) Lookup(key string) (any, bool) {
	if v, ok := r.Fields[key]; ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var current any = r.Fields
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
