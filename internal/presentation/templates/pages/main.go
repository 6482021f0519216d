// Package pages renders each route's payload into an HTML fragment
package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/presentation/templates/widgets"
)

var mainPageTmpl = template.Must(template.New("mainPage").Parse(
	`<section class="page page-main">
{{- range .Posts}}
<article class="post" data-post="{{.ID}}">
<h2 class="post-title">{{.Title}}</h2>
{{- if .Date}}<time class="post-date">{{.Date}}</time>{{end}}
<img class="post-image" src="{{.MainImage}}" alt="{{.Title}}" loading="lazy">
<p class="post-description">{{.Description}}</p>
{{- if .Carousel}}
{{.Carousel}}
{{- end}}
{{- if .Video}}
<video class="post-video" controls preload="none" poster="{{.Video.Thumbnail}}" src="{{.Video.URL}}"></video>
{{- end}}
{{- if .Tags}}
<ul class="post-tags">
{{- range .Tags}}<li class="post-tag">{{.}}</li>{{end}}
</ul>
{{- end}}
</article>
{{- end}}
{{- if not .Posts}}<p class="page-empty">Nothing here yet.</p>{{end}}
</section>`,
))

type mainPost struct {
	content.Post
	Carousel template.HTML
}

type mainPageData struct {
	Posts []mainPost
}

// RenderMain renders the feed page. Posts with screenshots get an embedded
// carousel.
func RenderMain(payload *content.MainPayload) string {
	data := mainPageData{Posts: make([]mainPost, 0, len(payload.Posts))}

	for _, post := range payload.Posts {
		entry := mainPost{Post: post}
		if len(post.Screenshots) > 0 {
			slides := make([]widgets.Slide, 0, len(post.Screenshots))
			for _, src := range post.Screenshots {
				slides = append(slides, widgets.Slide{Src: src, Alt: post.Title})
			}
			entry.Carousel = template.HTML(widgets.RenderCarousel("main", post.ID, 0, slides))
		}
		data.Posts = append(data.Posts, entry)
	}

	var buf bytes.Buffer
	if err := mainPageTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute main page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
