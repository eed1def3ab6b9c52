package types

type VisitedRepository struct {
	URL          string    `yaml:"url"`
	Ref          string    `yaml:"ref"`
	Origin       RefOrigin `yaml:"origin"`
	Requirements int       `yaml:"requirements"`
}

type FetchFailure struct {
	URL    string `yaml:"url"`
	Ref    string `yaml:"ref,omitempty"`
	Reason string `yaml:"reason"`
}

type SpecifierConflict struct {
	Name      string `yaml:"name"`
	Specifier string `yaml:"specifier"`
	Detail    string `yaml:"detail"`
}

// TraversalReport records what a consolidation run did: every (repo, ref)
// pair visited in visit order, fetch failures, and detected specifier
// conflicts.
type TraversalReport struct {
	Visited   []VisitedRepository `yaml:"visited"`
	Failures  []FetchFailure      `yaml:"failures,omitempty"`
	Conflicts []SpecifierConflict `yaml:"conflicts,omitempty"`
	Packages  int                 `yaml:"packages"`
	Opaque    int                 `yaml:"opaque"`
}
