// Package report serializes and renders assessment reports for the display
// layer: machine formats (JSON, XML, CSV) and the terminal text views.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
)

// Generator produces assessment reports in machine-readable formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new report generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// Generate serializes the report in the specified format (json or xml).
// It returns an error for unsupported formats.
func (g *Generator) Generate(report *models.AssessmentReport, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(report)
	case "xml":
		return g.generateXML(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile serializes the report and writes it to the given path, creating
// parent directories as needed.
func (g *Generator) WriteFile(report *models.AssessmentReport, format, path string) error {
	data, err := g.Generate(report, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}

	g.logger.Info("Wrote assessment report",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: format},
		logging.Field{Key: logging.FieldReportID, Value: report.ID})
	return nil
}

func (g *Generator) generateJSON(report *models.AssessmentReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) generateXML(report *models.AssessmentReport) ([]byte, error) {
	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(data)), nil
}
