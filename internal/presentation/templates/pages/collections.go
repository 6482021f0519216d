package pages

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/presentation/templates/widgets"
)

var collectionsPageTmpl = template.Must(template.New("collectionsPage").Parse(
	`<section class="page page-collections">
{{- range .Collections}}
<div class="collection" data-collection="{{.ID}}">
<h2 class="collection-name">{{.Name}}</h2>
<img class="collection-cover" src="{{.Cover}}" alt="{{.Name}}" loading="lazy">
{{.Grid}}
</div>
{{- end}}
{{- if not .Collections}}<p class="page-empty">No collections yet.</p>{{end}}
</section>`,
))

type collectionView struct {
	content.Collection
	Grid template.HTML
}

type collectionsPageData struct {
	Collections []collectionView
}

// RenderCollections renders the collections page. Each collection's items
// are laid out as a grid window starting at the first item.
func RenderCollections(payload *content.CollectionsPayload, gridCount int) string {
	data := collectionsPageData{Collections: make([]collectionView, 0, len(payload.Collections))}

	for _, col := range payload.Collections {
		cells := make([]widgets.Cell, 0, len(col.Items))
		for _, item := range col.Items {
			cells = append(cells, widgets.Cell{
				Title: item.Title,
				Image: item.Image,
				Link:  item.Link,
			})
		}
		data.Collections = append(data.Collections, collectionView{
			Collection: col,
			Grid:       template.HTML(widgets.RenderGrid("collections", 0, gridCount, cells)),
		})
	}

	var buf bytes.Buffer
	if err := collectionsPageTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute collections page template: %v", err)
		return `<!-- template error -->`
	}

	return strings.TrimSpace(buf.String())
}
