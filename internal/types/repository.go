package types

// RepositoryRef identifies a remote repository at an optional ref. An
// empty Ref means "use the repository's default branch".
type RepositoryRef struct {
	URL string
	Ref string
}

// RepoKey is the traversal identity key: normalized repository URL plus
// the resolved ref. Two refs with the same key are fetched at most once.
type RepoKey struct {
	URL string
	Ref string
}
