package report

// SummaryTemplate is the HTML template for the run summary document.
// It is embedded as a Go constant — no external file dependencies.
const SummaryTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #16a34a;
    --red: #dc2626;
    --orange: #ea580c;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1, h2 { font-weight: 600; }
  h1 { font-size: 1.5rem; margin-bottom: 4px; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  .header { border-bottom: 3px solid var(--accent); padding-bottom: 12px; margin-bottom: 16px; }
  .stat-bar {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(160px, 1fr));
    gap: 8px;
    background: var(--section-bg);
    padding: 12px;
    border-radius: 8px;
    margin-bottom: 16px;
  }
  .stat-item { text-align: center; }
  .stat-item .label { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; }
  .stat-item .value { font-size: 1.05rem; font-weight: 600; }
  table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; font-size: 0.9rem; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid var(--border); }
  th { background: var(--section-bg); font-weight: 600; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  .status-OK { color: var(--green); font-weight: 600; }
  .status-WARN { color: var(--orange); font-weight: 600; }
  .status-CHECK { color: var(--red); font-weight: 600; }
  .chart { margin: 8px 0 16px; }
  .footer { margin-top: 24px; padding-top: 12px; border-top: 1px solid var(--border); }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Title}}</h1>
  <p class="muted">Bureau date {{.BureauDate}} &middot; generated {{.GeneratedAt}} IST</p>
</div>

<div class="stat-bar">
  <div class="stat-item"><div class="label">Customers</div><div class="value">{{.TotalCustomers}}</div></div>
  <div class="stat-item"><div class="label">Avg Tradelines</div><div class="value">{{.AvgTradelines}}</div></div>
  <div class="stat-item"><div class="label">Serviceable Base</div><div class="value">{{.ServiceableBase}}</div></div>
  <div class="stat-item"><div class="label">In Golden Window</div><div class="value">{{.GoldenWindowNow}}</div></div>
  <div class="stat-item"><div class="label">Year-1 AUM</div><div class="value">{{.TotalAUM}}</div></div>
  <div class="stat-item"><div class="label">Year-1 Net Revenue</div><div class="value">{{.TotalRevenue}}</div></div>
</div>

<h2>Population</h2>
<div class="chart">{{.BucketChart}}</div>

<h2>Demand Timing</h2>
<div class="chart">{{.CurveChart}}</div>
<div class="chart">{{.TimingChart}}</div>

<h2>Monetisation</h2>
<table>
  <tr><th>Stage</th><th class="num-h">Customers</th></tr>
  {{range .Waterfall}}<tr><td>{{.Stage}}</td><td class="num">{{.Value}}</td></tr>
  {{end}}
</table>

<h2>Data Quality</h2>
<table>
  <tr><th>Metric</th><th>Value</th><th>Status</th></tr>
  {{range .QualityRows}}<tr><td>{{.Metric}}</td><td>{{.Value}}</td><td class="status-{{.Status}}">{{.Status}}</td></tr>
  {{end}}
</table>

<div class="footer muted">
  Generated by bureauscrub. Figures derive entirely from the bureau extract and configured policy; verify against source data before commercial use.
</div>
</body>
</html>`
