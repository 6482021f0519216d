package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     Route
	}{
		{"full hash fragment", "#/collections", RouteCollections},
		{"bare hash", "#videos", RouteVideos},
		{"no prefix", "history", RouteHistory},
		{"empty fragment falls back", "", DefaultRoute},
		{"unknown name falls back", "#/bogus", DefaultRoute},
		{"case sensitive", "#/Collections", DefaultRoute},
		{"root hash falls back", "#/", DefaultRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.fragment))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("main"))
	assert.True(t, Valid("about"))
	assert.False(t, Valid("#/main"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Main"))
}

func TestInfo(t *testing.T) {
	info, ok := Info(RouteCollections)
	require.True(t, ok)
	assert.Equal(t, "data/collections.json", info.Path)
	assert.True(t, info.AllowsReload)

	for _, r := range []Route{RouteMain, RouteScreenshots, RouteVideos, RouteHistory, RouteAbout} {
		info, ok := Info(r)
		require.True(t, ok)
		assert.False(t, info.AllowsReload, "only collections permits force reload, got %s", r)
	}

	_, ok = Info(Route("bogus"))
	assert.False(t, ok)
}

func TestRouteForPath(t *testing.T) {
	r, ok := RouteForPath("data/main.json")
	require.True(t, ok)
	assert.Equal(t, RouteMain, r)

	_, ok = RouteForPath("data/nope.json")
	assert.False(t, ok)
}

func TestAllRoutesOrderAndIsolation(t *testing.T) {
	all := AllRoutes()
	require.Len(t, all, 6)
	assert.Equal(t, RouteMain, all[0].Route)
	assert.Equal(t, RouteAbout, all[5].Route)

	// Mutating the returned slice must not corrupt the route table.
	all[0].Title = "tampered"
	fresh := AllRoutes()
	assert.NotEqual(t, "tampered", fresh[0].Title)
}
