package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
)

var videosPageTmpl = template.Must(template.New("videosPage").Parse(
	`<section class="page page-videos">
{{- range .Videos}}
<div class="video-entry" data-video="{{.ID}}">
<h2 class="video-title">{{.Title}}</h2>
<video class="video-player" controls preload="none" poster="{{.Thumbnail}}" src="{{.URL}}"></video>
{{- if .Duration}}<span class="video-duration">{{.Duration}}</span>{{end}}
</div>
{{- end}}
{{- if not .Videos}}<p class="page-empty">No videos yet.</p>{{end}}
</section>`,
))

// RenderVideos renders the videos page.
func RenderVideos(payload *content.VideosPayload) string {
	var buf bytes.Buffer
	if err := videosPageTmpl.Execute(&buf, payload); err != nil {
		log.Printf("ERROR: Failed to execute videos page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
