package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Inspect(_ context.Context, req InspectRequest) (InspectResult, error) {
	reportPath := strings.TrimSpace(req.ReportPath)
	if reportPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	report, err := s.ReportReader.Read(reportPath)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		Visited:   len(report.Visited),
		Packages:  report.Packages,
		Opaque:    report.Opaque,
		Failures:  report.Failures,
		Conflicts: report.Conflicts,
	}, nil
}
