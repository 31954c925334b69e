// Package permissions maps routes to the roles allowed on them. The table is
// embedded from permissions.json.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on a route. Skip bypasses auth entirely;
// Optional parses a bearer token when one is sent and lets anonymous callers through.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
	Optional    bool     `json:"optional"`
}

// Restricted reports whether the route names any role at all.
func (p Permission) Restricted() bool {
	return !p.Skip && len(p.Permissions) > 0
}

func (p Permission) Allows(role string) bool {
	return slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]Permission
}

// FindPermissions matches the route pattern, ignoring a trailing slash. An
// unknown route yields the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.once.Do(func() {
		r.index = make(map[string]Permission, len(r.Endpoints))

		for _, endpoint := range r.Endpoints {
			key := routeKey(endpoint.Method, endpoint.Path)
			if _, dup := r.index[key]; dup {
				log.Warn().Str("route", key).Msg("duplicate permission entry ignored")

				continue
			}

			r.index[key] = endpoint
		}
	})

	return r.index[routeKey(method, path)]
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return method + " " + path
}

func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
