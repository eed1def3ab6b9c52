package types

// Requirement is one consolidated dependency: a PEP 503 normalized
// package name plus the merged specifier expression. The specifier may
// be empty for a bare name reference.
type Requirement struct {
	Name      string
	Specifier string
}

// SourceLink is a manifest line that points at another repository and
// optional pinned revision instead of a published package.
type SourceLink struct {
	URL  string
	Ref  string
	Name string
}
