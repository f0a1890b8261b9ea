package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/scene"
)

//go:embed orbits.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "orbits.html.tmpl"))

// figure is the document-level Plotly figure: traces, layout, and the
// animation frame list.
type figure struct {
	Data   []any         `json:"data"`
	Layout scene.Layout  `json:"layout"`
	Frames []scene.Frame `json:"frames"`
}

// WriteHTML renders the interactive document for the scene to path.
func WriteHTML(path string, desc *scene.Description) error {
	data := make([]any, 0, 1+len(desc.Paths)+len(desc.Markers))
	data = append(data, desc.Earth)
	for _, p := range desc.Paths {
		data = append(data, p)
	}
	for _, m := range desc.Markers {
		data = append(data, m)
	}

	figJSON, err := json.Marshal(figure{
		Data:   data,
		Layout: desc.Layout,
		Frames: desc.Frames,
	})
	if err != nil {
		return fmt.Errorf("marshaling figure: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	err = htmlTemplate.Execute(f, map[string]any{
		"Title":  desc.Layout.Title,
		"Figure": template.JS(figJSON),
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}
