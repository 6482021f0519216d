package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
)

var aboutPageTmpl = template.Must(template.New("aboutPage").Parse(
	`<section class="page page-about">
<img class="about-avatar" src="{{.Profile.Avatar}}" alt="{{.Profile.Name}}">
<h1 class="about-name">{{.Profile.Name}}</h1>
<p class="about-bio">{{.Profile.Bio}}</p>
{{- if .Profile.Links}}
<ul class="about-links">
{{- range .Profile.Links}}
<li><a href="{{.URL}}" rel="noopener">{{.Label}}</a></li>
{{- end}}
</ul>
{{- end}}
</section>`,
))

// RenderAbout renders the about page.
func RenderAbout(payload *content.AboutPayload) string {
	var buf bytes.Buffer
	if err := aboutPageTmpl.Execute(&buf, payload); err != nil {
		log.Printf("ERROR: Failed to execute about page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
