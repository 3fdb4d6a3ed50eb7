package splitpane

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style is a CSS-like property map keyed by camelCase property names.
type Style map[string]string

// Merge returns a new Style with others applied over s in order.
func (s Style) Merge(others ...Style) Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// ContainerStyle derives the outer container style. The layout keys always
// win over the host-supplied Style.
func ContainerStyle(cfg Config) Style {
	style := cfg.Style.Merge(Style{
		"display":          "flex",
		"flex":             "1",
		"top":              "0",
		"bottom":           "0",
		"position":         "absolute",
		"outline":          "none",
		"overflow":         "hidden",
		"MozUserSelect":    "text",
		"WebkitUserSelect": "text",
		"msUserSelect":     "text",
		"userSelect":       "text",
	})
	if cfg.Split == Vertical {
		return style.Merge(Style{
			"flexDirection": "row",
			"left":          "0",
			"right":         "0",
		})
	}
	return style.Merge(Style{
		"bottom":        "0",
		"flexDirection": "column",
		"minHeight":     "100%",
		"top":           "0",
		"width":         "100%",
	})
}

// PaneStyles merges the shared pane style with each pane's own style.
func PaneStyles(cfg Config) (pane1, pane2 Style) {
	return Prefix(cfg.PaneStyle.Merge(cfg.Pane1Style)), Prefix(cfg.PaneStyle.Merge(cfg.Pane2Style))
}

// ClassNames returns the container class list.
func ClassNames(cfg Config) string {
	classes := []string{"SplitPane"}
	if cfg.ClassName != "" {
		classes = append(classes, cfg.ClassName)
	}
	classes = append(classes, cfg.Split.String())
	if !cfg.AllowResize {
		classes = append(classes, "disabled")
	}
	return strings.Join(classes, " ")
}

// ResizerClassNames returns the divider class list.
func ResizerClassNames(cfg Config) string {
	classes := []string{"Resizer", cfg.Split.String()}
	if cfg.ResizerClassName != "" {
		classes = append(classes, cfg.ResizerClassName)
	}
	if !cfg.AllowResize {
		classes = append(classes, "disabled")
	}
	return strings.Join(classes, " ")
}

var vendorPrefixes = map[string][]string{
	"userSelect":    {"Webkit", "Moz", "ms"},
	"flex":          {"Webkit", "ms"},
	"flexDirection": {"Webkit", "ms"},
	"flexGrow":      {"Webkit"},
	"flexShrink":    {"Webkit"},
	"flexBasis":     {"Webkit"},
	"transition":    {"Webkit", "Moz", "ms"},
	"transform":     {"Webkit", "Moz", "ms"},
}

// displayFallbacks lists the display values emitted for display:flex, in
// cascade order.
var displayFallbacks = []string{"-webkit-box", "-moz-box", "-ms-flexbox", "-webkit-flex", "flex"}

// Prefix returns a copy of s with vendor variants added for the declared
// property set. Explicit vendor keys already present are left alone.
// Multiple display fallbacks are joined with ";".
func Prefix(s Style) Style {
	out := s.Merge()
	for prop, value := range s {
		for _, vendor := range vendorPrefixes[prop] {
			key := vendor + strings.ToUpper(prop[:1]) + prop[1:]
			if _, ok := out[key]; !ok {
				out[key] = value
			}
		}
	}
	if out["display"] == "flex" {
		out["display"] = strings.Join(displayFallbacks, ";")
	}
	return out
}

// Lipgloss maps the terminal-meaningful subset of a Style onto a lipgloss
// style. Unknown and vendor-prefixed keys are ignored.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if v := s["color"]; v != "" {
		ls = ls.Foreground(lipgloss.Color(v))
	}
	if v := firstOf(s, "backgroundColor", "background"); v != "" {
		ls = ls.Background(lipgloss.Color(v))
	}
	switch s["fontWeight"] {
	case "bold", "bolder", "700", "800", "900":
		ls = ls.Bold(true)
	}
	if s["fontStyle"] == "italic" {
		ls = ls.Italic(true)
	}
	if strings.Contains(s["textDecoration"], "underline") {
		ls = ls.Underline(true)
	}
	if v, err := strconv.ParseFloat(s["opacity"], 64); err == nil && v < 1 {
		ls = ls.Faint(true)
	}
	return ls
}

func firstOf(s Style, keys ...string) string {
	for _, k := range keys {
		if v := s[k]; v != "" {
			return v
		}
	}
	return ""
}

// Geometry is the cell layout of a split pane along its split axis.
type Geometry struct {
	Split   Orientation
	Total   int // extent along the split axis
	Cross   int // extent across it
	Pane1   int
	Divider int
	Pane2   int
}

// Layout places the panes inside a width x height container. The primary
// pane gets the size held by its store (bounded by the constraints and by
// the space available), the divider takes one cell, and the other pane
// fills the rest.
func Layout(width, height int, cfg Config, primary Size) Geometry {
	g := Geometry{Split: cfg.Split, Total: width, Cross: height}
	if cfg.Split == Horizontal {
		g.Total, g.Cross = height, width
	}
	if g.Total <= 0 {
		return g
	}
	g.Divider = 1
	avail := g.Total - g.Divider
	if !primary.IsSet() {
		primary = ResolveSize(cfg, Size{})
	}
	size := ClampSize(primary.Resolve(g.Total), g.Total, cfg)
	if size > avail {
		size = avail
	}
	if size < 0 {
		size = 0
	}
	if cfg.primaryFirst() {
		g.Pane1, g.Pane2 = size, avail-size
	} else {
		g.Pane1, g.Pane2 = avail-size, size
	}
	return g
}

// Dims returns the width and height of pane 1 and pane 2.
func (g Geometry) Dims() (w1, h1, w2, h2 int) {
	if g.Split == Vertical {
		return g.Pane1, g.Cross, g.Pane2, g.Cross
	}
	return g.Cross, g.Pane1, g.Cross, g.Pane2
}
