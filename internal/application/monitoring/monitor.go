// Package monitoring compares feature distributions between a reference
// table and a current one and renders a drift report for a human operator.
// It is advisory only and alters no pipeline state.
package monitoring

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/drift"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

// Monitor runs drift comparisons and writes the report artifact.
type Monitor struct {
	cfg    config.DriftConfig
	logger *zap.Logger
}

// NewMonitor creates a Monitor.
func NewMonitor(cfg config.DriftConfig, logger *zap.Logger) *Monitor {
	return &Monitor{cfg: cfg, logger: logger.Named("drift")}
}

// Run compares the reference and current feature tables column by column
// and renders the HTML report to reportPath. The order_id column is a row
// identifier, not a feature, and is excluded from comparison.
func (m *Monitor) Run(referencePath, currentPath, reportPath string) (*drift.Report, error) {
	reference, err := storage.ReadNumericColumns(referencePath, dataset.ColumnOrderID)
	if err != nil {
		return nil, err
	}
	current, err := storage.ReadNumericColumns(currentPath, dataset.ColumnOrderID)
	if err != nil {
		return nil, err
	}

	report, err := drift.Compare(reference, current, m.cfg.Threshold, m.cfg.DatasetShare)
	if err != nil {
		return nil, err
	}

	for _, col := range report.MissingInCurrent {
		m.logger.Warn("schema mismatch: column missing in current table", zap.String("column", col))
	}
	for _, col := range report.MissingInReference {
		m.logger.Warn("schema mismatch: column missing in reference table", zap.String("column", col))
	}

	if err := m.render(&report, reportPath); err != nil {
		return nil, err
	}

	m.logger.Info("drift report generated",
		zap.String("report", reportPath),
		zap.Int("columns", len(report.Columns)),
		zap.Int("drifted_columns", report.DriftedColumns),
		zap.Bool("dataset_drift", report.DatasetDrift),
	)
	return &report, nil
}

func (m *Monitor) render(report *drift.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, report); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("drift_report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Feature Drift Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f5f5f5; }
.drifted { color: #b00020; font-weight: bold; }
.ok { color: #1b7a2d; }
.warn { color: #a05a00; }
</style>
</head>
<body>
<h1>Feature Drift Report</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05 UTC"}}</p>
<p>
Dataset verdict:
{{if .DatasetDrift}}<span class="drifted">DRIFT DETECTED</span>{{else}}<span class="ok">no dataset drift</span>{{end}}
({{.DriftedColumns}} of {{len .Columns}} columns above KS threshold {{.Threshold}})
</p>
<p>Reference rows: {{.ReferenceRows}}, current rows: {{.CurrentRows}}</p>
{{if .MissingInCurrent}}<p class="warn">Columns missing in current table: {{range .MissingInCurrent}}{{.}} {{end}}</p>{{end}}
{{if .MissingInReference}}<p class="warn">Columns missing in reference table: {{range .MissingInReference}}{{.}} {{end}}</p>{{end}}
<table>
<tr><th>Column</th><th>KS statistic</th><th>Status</th></tr>
{{range .Columns}}
<tr>
<td>{{.Column}}</td>
<td>{{printf "%.4f" .Statistic}}</td>
<td>{{if .Drifted}}<span class="drifted">drifted</span>{{else}}<span class="ok">stable</span>{{end}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))
