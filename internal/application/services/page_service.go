// Package services provides the stateless application services that
// orchestrate navigation, loading, rendering, and caching.
package services

import (
	"context"
	"errors"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/internal/infrastructure/upstream"
	"github.com/lumenworks/galleria-go/internal/presentation/templates"
)

// ErrNavigationSuperseded reports that a newer navigation for the same
// session started before this one finished loading. The stale result is
// discarded and never rendered.
var ErrNavigationSuperseded = errors.New("navigation superseded by a newer request")

const fragmentVariantPage = "page"

// PageView is the complete result of navigating to a route.
type PageView struct {
	Route     navigation.Route `json:"route"`
	Title     string           `json:"title"`
	Payload   any              `json:"payload"`
	HTML      string           `json:"html"`
	FromCache bool             `json:"fromCache"`
}

// PageService coordinates a session's route transitions: resolve the
// fragment, load the payload, drop superseded loads, render, cache the
// rendered fragment.
type PageService struct {
	navigator *navigation.Navigator
	loader    *upstream.Loader
	cache     *manager.Manager
	renderer  *templates.Renderer
	bus       messaging.Publisher
	logger    *logging.ChanneledLogger
	perf      *performance.Tracker
}

func NewPageService(
	navigator *navigation.Navigator,
	loader *upstream.Loader,
	cache *manager.Manager,
	renderer *templates.Renderer,
	bus messaging.Publisher,
	logger *logging.ChanneledLogger,
	perf *performance.Tracker,
) *PageService {
	return &PageService{
		navigator: navigator,
		loader:    loader,
		cache:     cache,
		renderer:  renderer,
		bus:       bus,
		logger:    logger,
		perf:      perf,
	}
}

// Navigate resolves a location fragment and produces the page view for it.
// Unrecognized fragments fall back to the default route. A force reload is
// honored only on routes that permit it.
func (s *PageService) Navigate(parent context.Context, sessionID, fragment string, force bool) (*PageView, error) {
	route := navigation.Resolve(fragment)
	return s.NavigateRoute(parent, sessionID, route, force)
}

// NavigateRoute navigates a session directly to a known route.
func (s *PageService) NavigateRoute(parent context.Context, sessionID string, route navigation.Route, force bool) (*PageView, error) {
	ctx, token := s.navigator.Begin(parent, sessionID, route)

	result, err := s.loader.LoadRoute(ctx, route, force)
	if err != nil {
		s.navigator.Finish(sessionID, token)
		s.logger.Router().Warn("Navigation load failed", "sessionId", sessionID, "route", route, "error", err.Error())
		s.bus.Publish(messaging.Event{
			Topic: messaging.TopicDataError,
			Data:  map[string]any{"route": string(route), "error": err.Error()},
		})
		return nil, err
	}

	if !s.navigator.Commit(sessionID, token) {
		s.logger.Router().Debug("Navigation superseded", "sessionId", sessionID, "route", route)
		return nil, ErrNavigationSuperseded
	}

	view, err := s.buildView(route, result)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(messaging.Event{
		Topic: messaging.TopicRouteChange,
		Data:  map[string]any{"route": string(route), "sessionId": sessionID},
	})
	if !result.FromCache {
		s.bus.Publish(messaging.Event{
			Topic: messaging.TopicDataLoaded,
			Data:  map[string]any{"route": string(route)},
		})
	}

	return view, nil
}

// View loads and renders a route without session navigation bookkeeping,
// used for direct API reads.
func (s *PageService) View(ctx context.Context, route navigation.Route, force bool) (*PageView, error) {
	result, err := s.loader.LoadRoute(ctx, route, force)
	if err != nil {
		return nil, err
	}
	return s.buildView(route, result)
}

func (s *PageService) buildView(route navigation.Route, result upstream.Result) (*PageView, error) {
	info, _ := navigation.Info(route)

	html, cached := s.cache.Fragments.Get(route, fragmentVariantPage)
	if !cached {
		marker := s.perf.StartOperation("fragment:render:" + string(route))
		rendered, err := s.renderer.RenderPage(route, result.Payload)
		if err != nil {
			marker.SetError(err)
			s.perf.CompleteOperation(marker)
			s.logger.Content().Error("Fragment render failed", "route", route, "error", err.Error())
			return nil, err
		}
		s.perf.CompleteOperation(marker)
		html = rendered
		s.cache.Fragments.Set(route, fragmentVariantPage, html)
	}

	return &PageView{
		Route:     route,
		Title:     info.Title,
		Payload:   result.Payload,
		HTML:      html,
		FromCache: result.FromCache,
	}, nil
}

// CarouselFragment renders the carousel for one post of a route.
func (s *PageService) CarouselFragment(ctx context.Context, route navigation.Route, postID string, active int) (string, error) {
	result, err := s.loader.LoadRoute(ctx, route, false)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderCarousel(result.Payload, route, postID, active)
}

// GridFragment renders a grid window over a route's cells.
func (s *PageService) GridFragment(ctx context.Context, route navigation.Route, offset, count int) (string, error) {
	result, err := s.loader.LoadRoute(ctx, route, false)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderGridWindow(result.Payload, route, offset, count)
}

// Nav renders the navigation chrome for a session's current route.
func (s *PageService) Nav(sessionID string) string {
	route, ok := s.navigator.Current(sessionID)
	if !ok {
		route = navigation.DefaultRoute
	}
	return s.renderer.RenderNav(route)
}

// EndSession releases a session's navigation state.
func (s *PageService) EndSession(sessionID string) {
	s.navigator.Drop(sessionID)
}
