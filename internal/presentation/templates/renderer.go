// Package templates dispatches route payloads to their page renderers and
// renders shared chrome like the navigation bar.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/presentation/templates/pages"
	"github.com/lumenworks/galleria-go/internal/presentation/templates/widgets"
	"github.com/lumenworks/galleria-go/pkg/config"
)

var navTmpl = template.Must(template.New("nav").Parse(
	`<nav class="site-nav">
{{- range .Items}}
<a href="#/{{.Fragment}}" class="nav-link{{if .Active}} is-active{{end}}" data-route="{{.Route}}">{{.Title}}</a>
{{- end}}
</nav>`,
))

type navItem struct {
	Route    string
	Fragment string
	Title    string
	Active   bool
}

// Renderer turns validated payloads into page fragments.
type Renderer struct {
	gridCount int
}

func NewRenderer() *Renderer {
	return &Renderer{gridCount: config.GridWindowSize}
}

// RenderPage renders the full fragment for a route from its typed payload.
func (r *Renderer) RenderPage(route navigation.Route, payload any) (string, error) {
	switch p := payload.(type) {
	case *content.MainPayload:
		return pages.RenderMain(p), nil
	case *content.CollectionsPayload:
		return pages.RenderCollections(p, r.gridCount), nil
	case *content.ScreenshotsPayload:
		return pages.RenderScreenshots(p, r.gridCount), nil
	case *content.VideosPayload:
		return pages.RenderVideos(p), nil
	case *content.HistoryPayload:
		return pages.RenderHistory(p), nil
	case *content.AboutPayload:
		return pages.RenderAbout(p), nil
	default:
		return "", fmt.Errorf("no renderer for route %s", route)
	}
}

// RenderNav renders the site navigation with the active route marked.
func (r *Renderer) RenderNav(active navigation.Route) string {
	data := struct{ Items []navItem }{}
	for _, info := range navigation.AllRoutes() {
		data.Items = append(data.Items, navItem{
			Route:    string(info.Route),
			Fragment: string(info.Route),
			Title:    info.Title,
			Active:   info.Route == active,
		})
	}

	var buf bytes.Buffer
	if err := navTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute nav template: %v", err)
		return `<!-- template error -->`
	}
	return buf.String()
}

// RenderCarousel renders the carousel fragment for one post on the feed.
func (r *Renderer) RenderCarousel(payload any, route navigation.Route, postID string, active int) (string, error) {
	main, ok := payload.(*content.MainPayload)
	if !ok {
		return "", fmt.Errorf("route %s has no carousel content", route)
	}

	for _, post := range main.Posts {
		if post.ID != postID {
			continue
		}
		slides := make([]widgets.Slide, 0, len(post.Screenshots))
		for _, src := range post.Screenshots {
			slides = append(slides, widgets.Slide{Src: src, Alt: post.Title})
		}
		return widgets.RenderCarousel(string(route), post.ID, active, slides), nil
	}

	return "", fmt.Errorf("post %s not found on route %s", postID, route)
}

// RenderGridWindow renders a grid window over a route's flattened cells.
func (r *Renderer) RenderGridWindow(payload any, route navigation.Route, offset, count int) (string, error) {
	cells, err := gridCells(payload)
	if err != nil {
		return "", fmt.Errorf("route %s: %w", route, err)
	}
	if count <= 0 {
		count = r.gridCount
	}
	return widgets.RenderGrid(string(route), offset, count, cells), nil
}

// gridCells flattens a payload into grid cells, for the payload shapes that
// have a natural grid representation.
func gridCells(payload any) ([]widgets.Cell, error) {
	switch p := payload.(type) {
	case *content.CollectionsPayload:
		var cells []widgets.Cell
		for _, col := range p.Collections {
			for _, item := range col.Items {
				cells = append(cells, widgets.Cell{Title: item.Title, Image: item.Image, Link: item.Link})
			}
		}
		return cells, nil
	case *content.ScreenshotsPayload:
		var cells []widgets.Cell
		for _, group := range p.Groups {
			for _, img := range group.Images {
				cells = append(cells, widgets.Cell{Title: group.Name, Image: img, Link: img})
			}
		}
		return cells, nil
	case *content.MainPayload:
		var cells []widgets.Cell
		for _, post := range p.Posts {
			cells = append(cells, widgets.Cell{Title: post.Title, Image: post.MainImage, Link: "#/main"})
		}
		return cells, nil
	default:
		return nil, fmt.Errorf("payload has no grid representation")
	}
}
