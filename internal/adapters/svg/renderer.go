package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/gantt/internal/ports/primary"
)

// Renderer writes a RenderResult as an SVG document.
type Renderer struct {
	theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Render writes the SVG document for one layout pass. Bars are offset by the
// theme's padding; connector paths come through from the router untouched
// apart from the same offset.
func (r *Renderer) Render(result *primary.RenderResult, w io.Writer) error {
	t := r.theme
	width, height := canvasSize(result, t)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height))
	svg.WriteString(fmt.Sprintf(`  <rect width="%d" height="%d" fill="%s"/>`+"\n", width, height, t.Colors.Background))

	ox := float64(t.Layout.PaddingLeft)
	oy := float64(t.Layout.PaddingTop)

	for _, pm := range result.Milestones {
		fill := t.Colors.Bar
		if pm.Live && !pm.Valid {
			fill = t.Colors.Conflict
		}
		svg.WriteString(fmt.Sprintf(`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" fill="%s" stroke="%s"/>`+"\n",
			pm.X+ox, pm.Y+oy, pm.Width, pm.Height, t.Layout.CornerRadius, fill, t.Colors.BarBorder))

		if pm.Milestone.Completed > 0 {
			progressWidth := pm.Width * float64(pm.Milestone.Completed) / 100
			svg.WriteString(fmt.Sprintf(`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" fill="%s"/>`+"\n",
				pm.X+ox, pm.Y+oy, progressWidth, pm.Height, t.Layout.CornerRadius, t.Colors.Progress))
		}

		label := escapeText(pm.Milestone.Title)
		svg.WriteString(fmt.Sprintf(`  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
			pm.X+ox+4, pm.Y+oy+pm.Height/2+float64(t.Font.Size)/3, t.Font.Family, t.Font.Size, t.Colors.Text, label))
	}

	for _, c := range result.Connectors {
		svg.WriteString(fmt.Sprintf(`  <path d="%s" transform="translate(%.1f %.1f)" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			c.D, ox, oy, t.Colors.Connector))
	}

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

// canvasSize derives the document size from the positioned bars.
func canvasSize(result *primary.RenderResult, t Theme) (int, int) {
	maxX, maxY := 0.0, 0.0
	for _, pm := range result.Milestones {
		if pm.X+pm.Width > maxX {
			maxX = pm.X + pm.Width
		}
		if pm.Y+pm.Height > maxY {
			maxY = pm.Y + pm.Height
		}
	}
	width := int(maxX) + t.Layout.PaddingLeft*2
	height := int(maxY) + t.Layout.PaddingTop*2
	if width < 200 {
		width = 200
	}
	if height < 100 {
		height = 100
	}
	return width, height
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
