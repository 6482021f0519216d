package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownSet_TouchAndAdd(t *testing.T) {
	set := newKnownSet(3)

	assert.False(t, set.touch("a.jpg"))
	set.add("a.jpg")
	assert.True(t, set.touch("a.jpg"))
	assert.Equal(t, 1, set.len())
}

func TestKnownSet_EvictsOldestAtCapacity(t *testing.T) {
	set := newKnownSet(3)

	set.add("a.jpg")
	set.add("b.jpg")
	set.add("c.jpg")

	// Touch a so b becomes the oldest.
	set.touch("a.jpg")
	set.add("d.jpg")

	assert.Equal(t, 3, set.len())
	assert.True(t, set.touch("a.jpg"))
	assert.False(t, set.touch("b.jpg"), "least recently seen URL is forgotten")
	assert.True(t, set.touch("c.jpg"))
	assert.True(t, set.touch("d.jpg"))
}

func TestPreloader_FilterUnknown(t *testing.T) {
	p := &Preloader{knownImages: newKnownSet(10), knownVideos: newKnownSet(10)}

	fresh := p.filterUnknown(p.knownImages, []string{"a.jpg", "", "b.jpg", "a.jpg"})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, fresh, "empty and duplicate URLs are skipped")

	// Already recorded URLs are filtered on later calls.
	fresh = p.filterUnknown(p.knownImages, []string{"a.jpg", "c.jpg"})
	assert.Equal(t, []string{"c.jpg"}, fresh)
}
