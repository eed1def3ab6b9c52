package ports

import "reqmerge/internal/types"

type RepoListPort interface {
	Load(path string) ([]types.RepositoryRef, error)
}
