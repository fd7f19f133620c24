// Package navigation maps the checkout views to their paths.
package navigation

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// View is a logical page of the checkout UI.
type View string

const (
	ViewHome    View = "home"
	ViewPayment View = "payment"
)

// Route binds a view to a path.
type Route struct {
	Path string
	View View
}

var routes = []Route{
	{Path: "/", View: ViewHome},
	{Path: "/payment", View: ViewPayment},
}

// Routes returns a copy of the navigation table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup returns the view served at path.
func Lookup(path string) (View, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r.View, true
		}
	}
	return "", false
}

// PathFor returns the path of view.
func PathFor(view View) (string, bool) {
	for _, r := range routes {
		if r.View == view {
			return r.Path, true
		}
	}
	return "", false
}

// MustPath is PathFor for views known at compile time.
func MustPath(view View) string {
	p, ok := PathFor(view)
	if !ok {
		panic(fmt.Sprintf("navigation: unknown view %q", view))
	}
	return p
}

// Mount registers a GET handler for every route. Every view in the table
// needs a handler.
func Mount(r chi.Router, views map[View]http.HandlerFunc) error {
	for _, route := range routes {
		h, ok := views[route.View]
		if !ok || h == nil {
			return fmt.Errorf("no handler for view %q", route.View)
		}
		r.Get(route.Path, h)
	}
	return nil
}
