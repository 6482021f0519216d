// Package navigation provides the route table and per-session navigation state.
package navigation

import (
	"errors"
	"strings"
)

// ErrUnknownRoute reports a route name outside the fixed route table.
var ErrUnknownRoute = errors.New("unknown route")

// Route identifies one of the six content sections of the site.
type Route string

const (
	RouteMain        Route = "main"
	RouteCollections Route = "collections"
	RouteScreenshots Route = "screenshots"
	RouteVideos      Route = "videos"
	RouteHistory     Route = "history"
	RouteAbout       Route = "about"
)

// DefaultRoute is where unrecognized fragments land.
const DefaultRoute = RouteMain

// fragmentPrefix is stripped from URL fragments before matching.
const fragmentPrefix = "#/"

// RouteInfo describes a route's upstream resource and display metadata.
type RouteInfo struct {
	Route        Route
	Path         string // upstream JSON resource path
	Title        string
	AllowsReload bool // whether a force-reload request is honored
}

// routeTable is the fixed, ordered route configuration.
var routeTable = []RouteInfo{
	{Route: RouteMain, Path: "data/main.json", Title: "Feed"},
	{Route: RouteCollections, Path: "data/collections.json", Title: "Collections", AllowsReload: true},
	{Route: RouteScreenshots, Path: "data/screenshots.json", Title: "Screenshots"},
	{Route: RouteVideos, Path: "data/videos.json", Title: "Videos"},
	{Route: RouteHistory, Path: "data/history.json", Title: "History"},
	{Route: RouteAbout, Path: "data/about.json", Title: "About"},
}

var routesByName = func() map[Route]RouteInfo {
	m := make(map[Route]RouteInfo, len(routeTable))
	for _, info := range routeTable {
		m[info.Route] = info
	}
	return m
}()

var routesByPath = func() map[string]Route {
	m := make(map[string]Route, len(routeTable))
	for _, info := range routeTable {
		m[info.Path] = info.Route
	}
	return m
}()

// AllRoutes returns the route table in display order.
func AllRoutes() []RouteInfo {
	out := make([]RouteInfo, len(routeTable))
	copy(out, routeTable)
	return out
}

// Info returns the configuration for a route.
func Info(r Route) (RouteInfo, bool) {
	info, ok := routesByName[r]
	return info, ok
}

// RouteForPath maps an upstream resource path back to its route.
func RouteForPath(path string) (Route, bool) {
	r, ok := routesByPath[path]
	return r, ok
}

// Resolve normalizes a URL hash fragment to a route. The "#/" prefix is
// stripped, the remainder is matched case-sensitively, and anything
// unrecognized (including the empty fragment) falls back to the default route.
func Resolve(fragment string) Route {
	name := strings.TrimPrefix(fragment, fragmentPrefix)
	name = strings.TrimPrefix(name, "#")
	if _, ok := routesByName[Route(name)]; ok {
		return Route(name)
	}
	return DefaultRoute
}

// Valid reports whether the name matches a known route exactly.
func Valid(name string) bool {
	_, ok := routesByName[Route(name)]
	return ok
}
