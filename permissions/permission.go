// Package permissions holds the route to role table consulted by the auth middleware.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. Public routes and routes without roles allow everyone.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

// Load decodes the embedded permission table.
func Load() (*PermissionData, error) {
	return Parse(permissionsData)
}

// Parse decodes a permission table and rejects duplicate route entries.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s %s", endpoint.Method, endpoint.Path)
		}

		data.index[key] = endpoint
	}

	return &data, nil
}

// FindPermissions returns the entry for a route pattern, ignoring a trailing slash.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(path, method)]
}

func routeKey(path, method string) string {
	return strings.ToUpper(method) + " " + strings.TrimSuffix(path, "/")
}
