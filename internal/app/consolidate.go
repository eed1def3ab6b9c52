package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqmerge/internal/adapters"
	"reqmerge/internal/core"
	"reqmerge/internal/policies"
)

const defaultOutputPath = "requirements.txt"

func (s Service) Consolidate(ctx context.Context, req ConsolidateRequest) (ConsolidateResult, error) {
	inputPath := strings.TrimSpace(req.InputPath)
	if inputPath == "" {
		return ConsolidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	policy, err := policies.NewConflictPolicy(req.OnConflict)
	if err != nil {
		return ConsolidateResult{}, err
	}
	refs, err := s.RepoList.Load(inputPath)
	if err != nil {
		return ConsolidateResult{}, err
	}

	host := s.NewHost(adapters.HostConfig{
		APIBaseURL:     req.APIBaseURL,
		RawBaseURL:     req.RawBaseURL,
		Token:          req.Token,
		FallbackBranch: req.FallbackBranch,
		ManifestName:   req.ManifestName,
		Timeout:        time.Duration(req.HTTPTimeoutSec) * time.Second,
	})
	engine := core.NewEngine(host, time.Duration(req.FetchDelayMs)*time.Millisecond)
	result, err := engine.Consolidate(ctx, refs)
	if err != nil {
		return ConsolidateResult{}, err
	}

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = defaultOutputPath
	}
	if err := s.Manifest.Write(outputPath, result.Requirements, result.Opaque); err != nil {
		return ConsolidateResult{}, err
	}
	if reportPath := strings.TrimSpace(req.ReportPath); reportPath != "" {
		if err := s.ReportWriter.Write(reportPath, result.Report); err != nil {
			return ConsolidateResult{}, err
		}
	}
	// Output is written before the policy fires so a failing run still
	// leaves the manifest and report behind for inspection.
	if err := policy.Apply(result.Report.Conflicts); err != nil {
		return ConsolidateResult{}, err
	}
	return ConsolidateResult{
		OutputPath: outputPath,
		Packages:   len(result.Requirements),
		Opaque:     len(result.Opaque),
		Visited:    len(result.Report.Visited),
		Conflicts:  len(result.Report.Conflicts),
	}, nil
}
