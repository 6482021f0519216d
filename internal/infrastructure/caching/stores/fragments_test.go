package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

func TestFragmentStore_SetAndGet(t *testing.T) {
	fs := NewFragmentStore(time.Hour)

	fs.Set(navigation.RouteMain, "page", "<div>main</div>")
	fs.Set(navigation.RouteMain, "carousel:p1", "<div>carousel</div>")

	html, ok := fs.Get(navigation.RouteMain, "page")
	require.True(t, ok)
	assert.Equal(t, "<div>main</div>", html)

	_, ok = fs.Get(navigation.RouteMain, "grid:0")
	assert.False(t, ok)

	_, ok = fs.Get(navigation.RouteAbout, "page")
	assert.False(t, ok)
}

func TestFragmentStore_ExpiredFragmentMisses(t *testing.T) {
	fs := NewFragmentStore(time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs.now = func() time.Time { return base }
	fs.Set(navigation.RouteMain, "page", "<div>stale</div>")

	fs.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok := fs.Get(navigation.RouteMain, "page")
	assert.False(t, ok)
}

func TestFragmentStore_InvalidateRoute(t *testing.T) {
	fs := NewFragmentStore(time.Hour)

	fs.Set(navigation.RouteMain, "page", "<div>main</div>")
	fs.Set(navigation.RouteMain, "carousel:p1", "<div>carousel</div>")
	fs.Set(navigation.RouteAbout, "page", "<div>about</div>")

	fs.InvalidateRoute(navigation.RouteMain)

	_, ok := fs.Get(navigation.RouteMain, "page")
	assert.False(t, ok)
	_, ok = fs.Get(navigation.RouteMain, "carousel:p1")
	assert.False(t, ok)
	_, ok = fs.Get(navigation.RouteAbout, "page")
	assert.True(t, ok, "other routes keep their fragments")
}

func TestFragmentStore_SweepExpired(t *testing.T) {
	fs := NewFragmentStore(time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs.now = func() time.Time { return base }
	fs.Set(navigation.RouteMain, "page", "old")
	fs.Set(navigation.RouteMain, "grid:0", "old")

	fs.now = func() time.Time { return base.Add(50 * time.Minute) }
	fs.Set(navigation.RouteAbout, "page", "fresh")

	fs.now = func() time.Time { return base.Add(90 * time.Minute) }
	removed := fs.SweepExpired()

	assert.Equal(t, 2, removed)
	_, ok := fs.Get(navigation.RouteAbout, "page")
	assert.True(t, ok)
}
