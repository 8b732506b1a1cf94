// Package routes declares HTTP route groups and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/triage/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(path string, _ []string, route Route) {
			mux.HandleFunc(route.Method+" "+path, route.Handler)
		})
	}
}

// Describe adds the OpenAPI operations of the given groups to spec.
// Routes without an operation are left out of the document.
func Describe(spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(path string, tags []string, route Route) {
			if route.OpenAPI == nil {
				return
			}

			op := *route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}

			item, ok := spec.Paths[path]
			if !ok {
				item = &openapi.PathItem{}
				spec.Paths[path] = item
			}
			item.Set(route.Method, &op)
		})
	}
}

func walk(parentPrefix string, group Group, fn func(path string, tags []string, route Route)) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		path := fullPrefix + route.Pattern
		if path == "" {
			path = "/"
		}
		fn(path, group.Tags, route)
	}
	for _, child := range group.Children {
		if len(child.Tags) == 0 {
			child.Tags = group.Tags
		}
		walk(fullPrefix, child, fn)
	}
}
