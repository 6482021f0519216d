// Package widgets provides reusable HTML fragment renderers
package widgets

import (
	"bytes"
	"html/template"
	"log"
)

var carouselTmpl = template.Must(template.New("carousel").Parse(
	`<div class="carousel" data-route="{{.Route}}" data-post="{{.PostID}}" data-count="{{len .Slides}}">
<button class="carousel-prev" data-dir="-1" aria-label="Previous">&#8249;</button>
<div class="carousel-track">
{{- range $i, $slide := .Slides}}
<figure class="carousel-slide{{if eq $i $.Active}} is-active{{end}}" data-index="{{$i}}">
<img src="{{$slide.Src}}" alt="{{$slide.Alt}}" loading="lazy">
{{- if $slide.Caption}}<figcaption>{{$slide.Caption}}</figcaption>{{end}}
</figure>
{{- end}}
</div>
<button class="carousel-next" data-dir="1" aria-label="Next">&#8250;</button>
</div>`,
))

// Slide is a single carousel image.
type Slide struct {
	Src     string
	Alt     string
	Caption string
}

type carouselData struct {
	Route  string
	PostID string
	Active int
	Slides []Slide
}

// RenderCarousel renders a slide carousel for a post's screenshots. The
// active index is clamped into range; an empty slide list yields an empty
// shell so controls never point past the end.
func RenderCarousel(route, postID string, active int, slides []Slide) string {
	if active < 0 || active >= len(slides) {
		active = 0
	}

	data := carouselData{
		Route:  route,
		PostID: postID,
		Active: active,
		Slides: slides,
	}

	var buf bytes.Buffer
	if err := carouselTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute carousel template: %v", err)
		return `<!-- template error -->`
	}

	return buf.String()
}
