package stores

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

type fakeBackingStore struct {
	rows     map[navigation.Route][]byte
	stamp    time.Time
	failSave error
	saves    int
	deletes  int
	cleared  bool
}

func newFakeBackingStore() *fakeBackingStore {
	return &fakeBackingStore{rows: make(map[navigation.Route][]byte)}
}

func (f *fakeBackingStore) Load(route navigation.Route) ([]byte, time.Time, time.Time, bool) {
	raw, ok := f.rows[route]
	if !ok {
		return nil, time.Time{}, time.Time{}, false
	}
	ts := f.stamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return raw, ts, ts, true
}

func (f *fakeBackingStore) Save(route navigation.Route, raw []byte, lastUsed, lastLoaded time.Time) error {
	f.saves++
	if f.failSave != nil {
		return f.failSave
	}
	f.rows[route] = raw
	return nil
}

func (f *fakeBackingStore) Delete(route navigation.Route) {
	f.deletes++
	delete(f.rows, route)
}

func (f *fakeBackingStore) Clear() {
	f.cleared = true
	f.rows = make(map[navigation.Route][]byte)
}

type fakeDecoder struct {
	fail bool
}

func (f *fakeDecoder) Decode(route navigation.Route, raw []byte) (any, bool) {
	if f.fail {
		return nil, false
	}
	return string(raw), true
}

func TestRouteStore_SetAndLookup(t *testing.T) {
	rs := NewRouteStore(1024, time.Hour, nil, nil, logging.NewTestLogger())

	payload := map[string]string{"title": "Feed"}
	rs.Set(navigation.RouteMain, payload, []byte(`{"title":"Feed"}`))

	got, hit := rs.Lookup(navigation.RouteMain)
	require.True(t, hit)
	assert.Equal(t, payload, got)

	_, hit = rs.Lookup(navigation.RouteAbout)
	assert.False(t, hit)
}

func TestRouteStore_LookupEvictsExpired(t *testing.T) {
	rs := NewRouteStore(1024, time.Hour, nil, nil, logging.NewTestLogger())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rs.now = func() time.Time { return base }
	rs.Set(navigation.RouteMain, "payload", []byte("payload"))

	rs.now = func() time.Time { return base.Add(30 * time.Minute) }
	_, hit := rs.Lookup(navigation.RouteMain)
	assert.True(t, hit, "entry inside TTL should hit")

	rs.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, hit = rs.Lookup(navigation.RouteMain)
	assert.False(t, hit, "entry past TTL should miss")

	stats := rs.Stats()
	assert.Zero(t, stats.Entries, "expired entry should be removed on lookup")
	assert.Zero(t, stats.TotalBytes)
}

func TestRouteStore_EvictsLeastRecentlyUsed(t *testing.T) {
	rs := NewRouteStore(30, time.Hour, nil, nil, logging.NewTestLogger())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	rs.now = func() time.Time { return clock }

	rs.Set(navigation.RouteMain, "a", make([]byte, 10))
	clock = clock.Add(time.Minute)
	rs.Set(navigation.RouteVideos, "b", make([]byte, 10))
	clock = clock.Add(time.Minute)
	rs.Set(navigation.RouteAbout, "c", make([]byte, 10))

	// Touch main so videos becomes the oldest.
	clock = clock.Add(time.Minute)
	_, hit := rs.Lookup(navigation.RouteMain)
	require.True(t, hit)

	clock = clock.Add(time.Minute)
	rs.Set(navigation.RouteHistory, "d", make([]byte, 10))

	assert.True(t, rs.Has(navigation.RouteMain))
	assert.False(t, rs.Has(navigation.RouteVideos), "oldest-used route should be evicted")
	assert.True(t, rs.Has(navigation.RouteHistory))
	assert.LessOrEqual(t, rs.Stats().TotalBytes, int64(30))
}

func TestRouteStore_NeverEvictsRouteBeingWritten(t *testing.T) {
	rs := NewRouteStore(20, time.Hour, nil, nil, logging.NewTestLogger())

	rs.Set(navigation.RouteMain, "a", make([]byte, 10))
	rs.Set(navigation.RouteAbout, "b", make([]byte, 10))

	// An oversized rewrite of main must evict about, never main itself.
	rs.Set(navigation.RouteMain, "a2", make([]byte, 18))

	assert.True(t, rs.Has(navigation.RouteMain))
	assert.False(t, rs.Has(navigation.RouteAbout))

	got, hit := rs.Lookup(navigation.RouteMain)
	require.True(t, hit)
	assert.Equal(t, "a2", got)
}

func TestRouteStore_OversizedEntryStillStored(t *testing.T) {
	rs := NewRouteStore(10, time.Hour, nil, nil, logging.NewTestLogger())

	rs.Set(navigation.RouteMain, "big", make([]byte, 50))

	_, hit := rs.Lookup(navigation.RouteMain)
	assert.True(t, hit, "an entry larger than the whole budget is kept anyway")
}

func TestRouteStore_RestoresFromBackingStore(t *testing.T) {
	backing := newFakeBackingStore()
	backing.rows[navigation.RouteHistory] = []byte("persisted")

	rs := NewRouteStore(1024, time.Hour, backing, &fakeDecoder{}, logging.NewTestLogger())

	got, hit := rs.Lookup(navigation.RouteHistory)
	require.True(t, hit)
	assert.Equal(t, "persisted", got)
	assert.Equal(t, 1, rs.Stats().Entries)
}

func TestRouteStore_RestoreRefreshesTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	backing := newFakeBackingStore()
	backing.rows[navigation.RouteHistory] = []byte("persisted")
	backing.stamp = base.Add(-24 * time.Hour)

	rs := NewRouteStore(1024, time.Hour, backing, &fakeDecoder{}, logging.NewTestLogger())
	rs.now = func() time.Time { return base }

	_, hit := rs.Lookup(navigation.RouteHistory)
	require.True(t, hit, "restore must not inherit an already-stale load time")

	stats := rs.Stats()
	require.Len(t, stats.Routes, 1)
	assert.Equal(t, base, stats.Routes[0].LastUsed)
	assert.Equal(t, base, stats.Routes[0].LastLoaded)

	// The restored entry gets a full TTL from the moment of restoration.
	rs.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, hit = rs.Lookup(navigation.RouteHistory)
	assert.True(t, hit)

	rs.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, hit = rs.Lookup(navigation.RouteHistory)
	assert.False(t, hit)
}

func TestRouteStore_UndecodableRowIsDropped(t *testing.T) {
	backing := newFakeBackingStore()
	backing.rows[navigation.RouteHistory] = []byte("garbage")

	rs := NewRouteStore(1024, time.Hour, backing, &fakeDecoder{fail: true}, logging.NewTestLogger())

	_, hit := rs.Lookup(navigation.RouteHistory)
	assert.False(t, hit)
	assert.NotContains(t, backing.rows, navigation.RouteHistory, "bad row should be deleted")
}

func TestRouteStore_PersistFailureDegradesToMemory(t *testing.T) {
	backing := newFakeBackingStore()
	backing.failSave = errors.New("quota exceeded")

	rs := NewRouteStore(1024, time.Hour, backing, &fakeDecoder{}, logging.NewTestLogger())
	rs.Set(navigation.RouteMain, "payload", []byte("payload"))

	got, hit := rs.Lookup(navigation.RouteMain)
	require.True(t, hit, "write failure must not lose the in-memory entry")
	assert.Equal(t, "payload", got)
	assert.Equal(t, 2, backing.saves, "one eviction round and one retry")
}

func TestRouteStore_SweepExpired(t *testing.T) {
	rs := NewRouteStore(1024, time.Hour, nil, nil, logging.NewTestLogger())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rs.now = func() time.Time { return base }
	rs.Set(navigation.RouteMain, "a", []byte("a"))
	rs.Set(navigation.RouteAbout, "b", []byte("b"))

	rs.now = func() time.Time { return base.Add(30 * time.Minute) }
	rs.Set(navigation.RouteVideos, "c", []byte("c"))

	rs.now = func() time.Time { return base.Add(90 * time.Minute) }
	removed := rs.SweepExpired()

	assert.Equal(t, 2, removed)
	assert.True(t, rs.Has(navigation.RouteVideos))
	assert.Equal(t, 1, rs.Stats().Entries)
}

func TestRouteStore_ClearAll(t *testing.T) {
	backing := newFakeBackingStore()
	rs := NewRouteStore(1024, time.Hour, backing, &fakeDecoder{}, logging.NewTestLogger())

	rs.Set(navigation.RouteMain, "a", []byte("a"))
	rs.Set(navigation.RouteAbout, "b", []byte("b"))
	rs.ClearAll()

	assert.Zero(t, rs.Stats().Entries)
	assert.Zero(t, rs.Stats().TotalBytes)
	assert.True(t, backing.cleared)
}
