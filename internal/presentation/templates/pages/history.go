package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
)

var historyPageTmpl = template.Must(template.New("historyPage").Parse(
	`<section class="page page-history">
<ul class="timeline">
{{- range .Entries}}
<li class="timeline-entry">
<time class="entry-date">{{.Date}}</time>
<h2 class="entry-title">{{.Title}}</h2>
<p class="entry-text">{{.Text}}</p>
{{- range .Images}}
<img class="entry-image" src="{{.}}" alt="" loading="lazy">
{{- end}}
</li>
{{- end}}
</ul>
{{- if not .Entries}}<p class="page-empty">No history yet.</p>{{end}}
</section>`,
))

// RenderHistory renders the history timeline page.
func RenderHistory(payload *content.HistoryPayload) string {
	var buf bytes.Buffer
	if err := historyPageTmpl.Execute(&buf, payload); err != nil {
		log.Printf("ERROR: Failed to execute history page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
