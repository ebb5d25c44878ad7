package report

// SVG chart generator for the HTML summary. Pure Go, zero dependencies;
// charts are inlined into the document so it stays a single file.

import (
	"fmt"
	"strings"
)

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BarColor     string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        760,
		Height:       300,
		MarginTop:    40,
		MarginRight:  20,
		MarginBottom: 60,
		MarginLeft:   60,
		BarColor:     "#2563eb",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// BarPoint is one labelled bar.
type BarPoint struct {
	Label string
	Value float64
}

// BarChart renders a labelled vertical bar chart as an SVG string.
func BarChart(points []BarPoint, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}
	if len(points) == 0 {
		return emptySVG(cfg, "No data available")
	}

	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	for _, p := range points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	n := len(points)
	slot := float64(pw) / float64(n)
	barWidth := slot * 0.7

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))

	// Horizontal gridlines with axis labels.
	for i := 0; i <= 4; i++ {
		y := float64(py) + float64(ph)*float64(i)/4
		val := maxVal * float64(4-i) / 4
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" text-anchor="end" font-size="%d" fill="%s">%s</text>`,
			px-6, y+4, cfg.FontSize, cfg.TextColor, axisLabel(val)))
	}

	for i, p := range points {
		x := float64(px) + slot*float64(i) + (slot-barWidth)/2
		h := float64(ph) * p.Value / maxVal
		y := float64(py) + float64(ph) - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
			x, y, barWidth, h, cfg.BarColor))

		// Label bars sparsely when the x-axis is dense.
		step := 1
		if n > 20 {
			step = n / 12
		}
		if i%step == 0 {
			lx := x + barWidth/2
			ly := float64(py+ph) + 16
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="%d" fill="%s">%s</text>`,
				lx, ly, cfg.FontSize, cfg.TextColor, escapeXML(p.Label)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func svgHeader(cfg ChartConfig) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height))
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="24" font-size="14" font-weight="600" fill="%s">%s</text>`,
			cfg.MarginLeft, cfg.TextColor, escapeXML(cfg.Title)))
	}
	return sb.String()
}

func emptySVG(cfg ChartConfig, msg string) string {
	return svgHeader(cfg) + fmt.Sprintf(
		`<text x="%d" y="%d" text-anchor="middle" font-size="13" fill="%s">%s</text></svg>`,
		cfg.Width/2, cfg.Height/2, cfg.TextColor, escapeXML(msg))
}

// axisLabel compacts large axis values (12.5K, 3.2L, 1.1Cr).
func axisLabel(v float64) string {
	switch {
	case v >= 1e7:
		return fmt.Sprintf("%.1fCr", v/1e7)
	case v >= 1e5:
		return fmt.Sprintf("%.1fL", v/1e5)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	case v == float64(int64(v)):
		return fmt.Sprintf("%d", int64(v))
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
