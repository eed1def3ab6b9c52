package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqmerge/internal/types"
)

// ReportFileAdapter reads and writes YAML traversal reports.
type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) Write(path string, report types.TraversalReport) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal traversal report").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write traversal report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) Read(path string) (types.TraversalReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TraversalReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("traversal report not found").
			WithCause(err)
	}
	var report types.TraversalReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.TraversalReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse traversal report yaml").
			WithCause(err)
	}
	return report, nil
}
