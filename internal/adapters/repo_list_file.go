package adapters

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqmerge/internal/types"
)

// RepoListFileAdapter loads the input repository list: a JSON array of
// objects with a required "repo" field and an optional "commit" field.
type RepoListFileAdapter struct{}

func NewRepoListFileAdapter() RepoListFileAdapter {
	return RepoListFileAdapter{}
}

type repoEntry struct {
	Repo   string `json:"repo"`
	Commit string `json:"commit"`
}

func (a RepoListFileAdapter) Load(path string) ([]types.RepositoryRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repository list not found").
			WithCause(err)
	}
	var entries []repoEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository list must be a JSON array of {repo, commit} objects").
			WithCause(err)
	}
	refs := make([]types.RepositoryRef, 0, len(entries))
	for _, entry := range entries {
		repo := strings.TrimSpace(entry.Repo)
		if repo == "" {
			log.Warn().Msg("skipping repository entry without repo field")
			continue
		}
		refs = append(refs, types.RepositoryRef{
			URL: repo,
			Ref: strings.TrimSpace(entry.Commit),
		})
	}
	return refs, nil
}
