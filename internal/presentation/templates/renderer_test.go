package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

func TestRenderer_RenderPage(t *testing.T) {
	r := NewRenderer()

	t.Run("main", func(t *testing.T) {
		payload := &content.MainPayload{Posts: []content.Post{
			{ID: "p1", Title: "Sunrise", MainImage: "sunrise.jpg", Screenshots: []string{"a.jpg", "b.jpg"}},
		}}

		html, err := r.RenderPage(navigation.RouteMain, payload)
		require.NoError(t, err)
		assert.Contains(t, html, "Sunrise")
		assert.Contains(t, html, `src="sunrise.jpg"`)
		assert.Contains(t, html, "carousel", "posts with screenshots embed a carousel")
	})

	t.Run("videos", func(t *testing.T) {
		payload := &content.VideosPayload{Videos: []content.Video{
			{Title: "Tour", Thumbnail: "t.jpg", URL: "tour.mp4", Duration: "2:31"},
		}}

		html, err := r.RenderPage(navigation.RouteVideos, payload)
		require.NoError(t, err)
		assert.Contains(t, html, "Tour")
		assert.Contains(t, html, "2:31")
	})

	t.Run("about", func(t *testing.T) {
		payload := &content.AboutPayload{Profile: content.Profile{
			Name: "Lumen", Avatar: "me.jpg", Bio: "Photographer",
			Links: []content.ProfileLink{{Label: "Site", URL: "https://example.com"}},
		}}

		html, err := r.RenderPage(navigation.RouteAbout, payload)
		require.NoError(t, err)
		assert.Contains(t, html, "Lumen")
		assert.Contains(t, html, `href="https://example.com"`)
	})

	t.Run("unsupported payload", func(t *testing.T) {
		_, err := r.RenderPage(navigation.RouteMain, "not a payload")
		assert.Error(t, err)
	})
}

func TestRenderer_RenderPageEscapesMarkup(t *testing.T) {
	r := NewRenderer()
	payload := &content.VideosPayload{Videos: []content.Video{
		{Title: "<script>alert(1)</script>", Thumbnail: "t.jpg", URL: "v.mp4"},
	}}

	html, err := r.RenderPage(navigation.RouteVideos, payload)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRenderer_RenderNav(t *testing.T) {
	r := NewRenderer()

	html := r.RenderNav(navigation.RouteVideos)

	for _, info := range navigation.AllRoutes() {
		assert.Contains(t, html, `href="#/`+string(info.Route)+`"`)
		assert.Contains(t, html, info.Title)
	}
	assert.Contains(t, html, `class="nav-link is-active" data-route="videos"`)
	assert.NotContains(t, html, `class="nav-link is-active" data-route="main"`)
}

func TestRenderer_RenderCarousel(t *testing.T) {
	r := NewRenderer()
	payload := &content.MainPayload{Posts: []content.Post{
		{ID: "p1", Title: "Sunrise", Screenshots: []string{"a.jpg", "b.jpg"}},
	}}

	html, err := r.RenderCarousel(payload, navigation.RouteMain, "p1", 1)
	require.NoError(t, err)
	assert.Contains(t, html, `data-post="p1"`)
	assert.Contains(t, html, `src="b.jpg"`)

	_, err = r.RenderCarousel(payload, navigation.RouteMain, "missing", 0)
	assert.Error(t, err)

	_, err = r.RenderCarousel(&content.VideosPayload{}, navigation.RouteVideos, "p1", 0)
	assert.Error(t, err, "only the feed payload carries carousels")
}

func TestRenderer_RenderGridWindow(t *testing.T) {
	r := NewRenderer()

	t.Run("collections flatten across items", func(t *testing.T) {
		payload := &content.CollectionsPayload{Collections: []content.Collection{
			{Name: "A", Items: []content.CollectionItem{{Title: "One", Image: "1.jpg"}}},
			{Name: "B", Items: []content.CollectionItem{{Title: "Two", Image: "2.jpg"}}},
		}}

		html, err := r.RenderGridWindow(payload, navigation.RouteCollections, 0, 10)
		require.NoError(t, err)
		assert.Contains(t, html, `src="1.jpg"`)
		assert.Contains(t, html, `src="2.jpg"`)
	})

	t.Run("screenshots flatten across groups", func(t *testing.T) {
		payload := &content.ScreenshotsPayload{Groups: []content.ScreenshotGroup{
			{Name: "UI", Images: []string{"u1.png", "u2.png"}},
		}}

		html, err := r.RenderGridWindow(payload, navigation.RouteScreenshots, 1, 10)
		require.NoError(t, err)
		assert.NotContains(t, html, `src="u1.png"`)
		assert.Contains(t, html, `src="u2.png"`)
	})

	t.Run("zero count uses the configured window size", func(t *testing.T) {
		payload := &content.ScreenshotsPayload{Groups: []content.ScreenshotGroup{
			{Name: "UI", Images: []string{"a.png"}},
		}}

		html, err := r.RenderGridWindow(payload, navigation.RouteScreenshots, 0, 0)
		require.NoError(t, err)
		assert.Contains(t, html, `src="a.png"`)
	})

	t.Run("payload without a grid shape", func(t *testing.T) {
		_, err := r.RenderGridWindow(&content.AboutPayload{}, navigation.RouteAbout, 0, 10)
		assert.Error(t, err)
	})
}
