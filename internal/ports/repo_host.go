package ports

import (
	"context"

	"reqmerge/internal/types"
)

// RepoHostPort resolves refs and fetches dependency manifests from a
// repository hosting service.
type RepoHostPort interface {
	// DefaultBranch returns the branch to use when a repository ref is
	// unset. Implementations fall back to a configured literal on lookup
	// failure and only error when the URL itself is unusable.
	DefaultBranch(ctx context.Context, repoURL string) (string, error)
	// FetchManifest returns the raw manifest content at the given ref.
	FetchManifest(ctx context.Context, ref types.RepositoryRef) ([]byte, error)
}
