package app

import (
	"reqmerge/internal/adapters"
	"reqmerge/internal/ports"
)

type Service struct {
	RepoList     ports.RepoListPort
	Manifest     ports.ManifestWriterPort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	NewHost      func(cfg adapters.HostConfig) ports.RepoHostPort
}

func NewService() Service {
	reports := adapters.NewReportFileAdapter()
	return Service{
		RepoList:     adapters.NewRepoListFileAdapter(),
		Manifest:     adapters.NewManifestFileAdapter(),
		ReportWriter: reports,
		ReportReader: reports,
		NewHost: func(cfg adapters.HostConfig) ports.RepoHostPort {
			return adapters.NewGitHubHostAdapter(cfg)
		},
	}
}
