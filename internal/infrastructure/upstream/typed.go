package upstream

import (
	"context"
	"fmt"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

func loadAs[T any](ctx context.Context, l *Loader, route navigation.Route, force bool) (*T, bool, error) {
	result, err := l.LoadRoute(ctx, route, force)
	if err != nil {
		return nil, false, err
	}
	payload, ok := result.Payload.(*T)
	if !ok {
		return nil, false, fmt.Errorf("unexpected payload type for route %s", route)
	}
	return payload, result.FromCache, nil
}

// LoadMain returns the feed payload for the landing route.
func (l *Loader) LoadMain(ctx context.Context) (*content.MainPayload, bool, error) {
	return loadAs[content.MainPayload](ctx, l, navigation.RouteMain, false)
}

// LoadCollections returns the collections payload. This is the only route
// that honors a force reload.
func (l *Loader) LoadCollections(ctx context.Context, force bool) (*content.CollectionsPayload, bool, error) {
	return loadAs[content.CollectionsPayload](ctx, l, navigation.RouteCollections, force)
}

func (l *Loader) LoadScreenshots(ctx context.Context) (*content.ScreenshotsPayload, bool, error) {
	return loadAs[content.ScreenshotsPayload](ctx, l, navigation.RouteScreenshots, false)
}

func (l *Loader) LoadVideos(ctx context.Context) (*content.VideosPayload, bool, error) {
	return loadAs[content.VideosPayload](ctx, l, navigation.RouteVideos, false)
}

func (l *Loader) LoadHistory(ctx context.Context) (*content.HistoryPayload, bool, error) {
	return loadAs[content.HistoryPayload](ctx, l, navigation.RouteHistory, false)
}

func (l *Loader) LoadAbout(ctx context.Context) (*content.AboutPayload, bool, error) {
	return loadAs[content.AboutPayload](ctx, l, navigation.RouteAbout, false)
}
