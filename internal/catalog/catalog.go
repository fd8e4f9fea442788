// Package catalog exposes read-only discovery over the host type registry.
//
// Discovery deliberately never instantiates a type to probe its pins: some
// host types fault when probed on an uninitialized default instance, so pin
// sets are observable only once a live instance exists inside a graph.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/hostreg"
)

// Descriptor is the router-facing summary of one discoverable type.
type Descriptor struct {
	Name        string
	DisplayName string
	Category    string
	Description string
	// Parameter reports whether the type exposes a named parameter slot.
	Parameter bool
}

// DefaultMaxResults caps discovery when the caller passes no explicit limit.
const DefaultMaxResults = 200

// DiscoverTypes enumerates concrete expression types, filtered by category
// and a case-insensitive substring search over name, category and
// description. The result is deterministically ordered by category, then
// display name, and capped at maxResults.
func DiscoverTypes(ctx context.Context, reg *hostreg.Registry, category, search string, maxResults int) []Descriptor {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	needle := strings.ToLower(search)

	var out []Descriptor
	for _, def := range reg.EnumerateConcreteSubtypes(category) {
		if needle != "" && !matches(def, needle) {
			continue
		}
		out = append(out, Descriptor{
			Name:        def.Name,
			DisplayName: def.Display(),
			Category:    def.Category,
			Description: def.Description,
			Parameter:   def.Parameter,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].DisplayName < out[j].DisplayName
	})

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	ctxlog.FromContext(ctx).Debug("Type discovery complete.",
		"category", category, "search", search, "results", len(out))
	return out
}

func matches(def *hostreg.TypeDef, needle string) bool {
	return strings.Contains(strings.ToLower(def.Name), needle) ||
		strings.Contains(strings.ToLower(def.Display()), needle) ||
		strings.Contains(strings.ToLower(def.Category), needle) ||
		strings.Contains(strings.ToLower(def.Description), needle)
}
