package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/presentation/templates/widgets"
)

var screenshotsPageTmpl = template.Must(template.New("screenshotsPage").Parse(
	`<section class="page page-screenshots">
{{- range .Groups}}
<div class="screenshot-group">
<h2 class="group-name">{{.Name}}</h2>
{{.Grid}}
</div>
{{- end}}
{{- if not .Groups}}<p class="page-empty">No screenshots yet.</p>{{end}}
</section>`,
))

type screenshotGroupView struct {
	Name string
	Grid template.HTML
}

type screenshotsPageData struct {
	Groups []screenshotGroupView
}

// RenderScreenshots renders the screenshots page as one grid per group.
func RenderScreenshots(payload *content.ScreenshotsPayload, gridCount int) string {
	data := screenshotsPageData{Groups: make([]screenshotGroupView, 0, len(payload.Groups))}

	for _, group := range payload.Groups {
		cells := make([]widgets.Cell, 0, len(group.Images))
		for _, img := range group.Images {
			cells = append(cells, widgets.Cell{
				Title: group.Name,
				Image: img,
				Link:  img,
			})
		}
		data.Groups = append(data.Groups, screenshotGroupView{
			Name: group.Name,
			Grid: template.HTML(widgets.RenderGrid("screenshots", 0, gridCount, cells)),
		})
	}

	var buf bytes.Buffer
	if err := screenshotsPageTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute screenshots page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
