package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// summaryData is the template model for the HTML run summary.
type summaryData struct {
	Title       string
	BureauDate  string
	GeneratedAt string

	TotalCustomers  int
	AvgTradelines   string
	ServiceableBase int
	GoldenWindowNow int
	TotalAUM        string
	TotalRevenue    string

	BucketChart template.HTML
	CurveChart  template.HTML
	TimingChart template.HTML

	Waterfall   []models.WaterfallStage
	QualityRows []models.QualityRow
}

// RenderSummary renders the single-file HTML run summary from the view
// documents. Charts are inlined SVG.
func RenderSummary(vs *models.ViewSet) ([]byte, error) {
	tmpl, err := template.New("summary").Parse(SummaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse summary template: %w", err)
	}

	data := summaryData{
		Title:           "Bureau Extract Summary",
		BureauDate:      vs.Overview.BureauDate,
		GeneratedAt:     utils.NowIST().Format("02 Jan 2006 15:04"),
		TotalCustomers:  vs.Overview.TotalCustomers,
		AvgTradelines:   fmt.Sprintf("%.2f", vs.Overview.AvgTradelinesPerCustomer),
		ServiceableBase: vs.Overview.ServiceableBase,
		GoldenWindowNow: vs.Overview.CustomersInGoldenWindowNow,
		TotalAUM:        utils.FormatINRCompact(vs.Monetisation.RevenueModel.TotalAumYear1Inr),
		TotalRevenue:    utils.FormatINRCompact(vs.Monetisation.RevenueModel.TotalNetRevenueYear1Inr),
		BucketChart:     chartHTML("Delinquency Buckets", bucketBars(vs.Population.BucketDistribution)),
		CurveChart:      chartHTML("Time to Next PL Open (months)", curveBars(vs.Behaviour.TimeToNextPLCurveA)),
		TimingChart:     chartHTML("Timing Flags", flagBars(vs.Timing.TimingFlagDistribution)),
		Waterfall:       vs.Monetisation.TamWaterfall,
		QualityRows:     vs.DataQuality.Table,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSummary renders the summary and writes it as summary.html in dir.
func WriteSummary(dir string, vs *models.ViewSet) (string, error) {
	data, err := RenderSummary(vs)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "summary.html")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

func chartHTML(title string, points []BarPoint) template.HTML {
	cfg := DefaultChartConfig()
	cfg.Title = title
	return template.HTML(BarChart(points, cfg)) //nolint:gosec // generated SVG, no user input
}

func bucketBars(slices []models.BucketSlice) []BarPoint {
	out := make([]BarPoint, len(slices))
	for i, s := range slices {
		out[i] = BarPoint{Label: s.Bucket, Value: float64(s.Customers)}
	}
	return out
}

func curveBars(curve []models.MonthCount) []BarPoint {
	out := make([]BarPoint, len(curve))
	for i, m := range curve {
		out[i] = BarPoint{Label: fmt.Sprintf("%d", m.Months), Value: float64(m.Count)}
	}
	return out
}

func flagBars(flags []models.FlagCount) []BarPoint {
	out := make([]BarPoint, len(flags))
	for i, f := range flags {
		out[i] = BarPoint{Label: f.Flag, Value: float64(f.Customers)}
	}
	return out
}
