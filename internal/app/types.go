package app

import "reqmerge/internal/types"

type ConsolidateRequest struct {
	InputPath      string
	OutputPath     string
	ManifestName   string
	Token          string
	FallbackBranch string
	APIBaseURL     string
	RawBaseURL     string
	FetchDelayMs   int
	HTTPTimeoutSec int
	ReportPath     string
	OnConflict     string
}

type ConsolidateResult struct {
	OutputPath string
	Packages   int
	Opaque     int
	Visited    int
	Conflicts  int
}

type ValidateRequest struct {
	InputPath string
}

type ValidateResult struct {
	Repositories int
	Pinned       int
}

type InspectRequest struct {
	ReportPath string
}

type InspectResult struct {
	Visited   int
	Packages  int
	Opaque    int
	Failures  []types.FetchFailure
	Conflicts []types.SpecifierConflict
}
