package ports

import "reqmerge/internal/types"

type ManifestWriterPort interface {
	Write(path string, requirements []types.Requirement, opaque []string) error
}

type ReportWriterPort interface {
	Write(path string, report types.TraversalReport) error
}

type ReportReaderPort interface {
	Read(path string) (types.TraversalReport, error)
}
