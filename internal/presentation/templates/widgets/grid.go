package widgets

import (
	"bytes"
	"html/template"
	"log"
)

var gridTmpl = template.Must(template.New("grid").Parse(
	`<div class="grid" data-route="{{.Route}}" data-offset="{{.Offset}}" data-total="{{.Total}}">
{{- range .Cells}}
<a class="grid-cell" href="{{.Link}}" data-index="{{.Index}}">
<img src="{{.Image}}" alt="{{.Title}}" loading="lazy">
<span class="grid-cell-title">{{.Title}}</span>
</a>
{{- end}}
{{- if .HasMore}}
<div class="grid-sentinel" data-next-offset="{{.NextOffset}}"></div>
{{- end}}
</div>`,
))

// Cell is one tile in a grid window.
type Cell struct {
	Index int
	Title string
	Image string
	Link  string
}

type gridData struct {
	Route      string
	Offset     int
	Total      int
	Cells      []Cell
	HasMore    bool
	NextOffset int
}

// RenderGrid renders a window of grid cells. Offset and count are clamped to
// the available cells, so an out-of-range window renders an empty grid
// rather than failing.
func RenderGrid(route string, offset, count int, cells []Cell) string {
	total := len(cells)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + count
	if count <= 0 || end > total {
		end = total
	}

	window := make([]Cell, 0, end-offset)
	for i := offset; i < end; i++ {
		c := cells[i]
		c.Index = i
		window = append(window, c)
	}

	data := gridData{
		Route:      route,
		Offset:     offset,
		Total:      total,
		Cells:      window,
		HasMore:    end < total,
		NextOffset: end,
	}

	var buf bytes.Buffer
	if err := gridTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: Failed to execute grid template: %v", err)
		return `<!-- template error -->`
	}

	return buf.String()
}
