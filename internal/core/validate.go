package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqmerge/internal/shared"
	"reqmerge/internal/types"
)

// ValidateRefs checks that a repository list is usable before any
// network traffic happens. Unlike the traversal itself, which skips bad
// entries, validation is strict: any unusable entry fails the list.
func ValidateRefs(ctx context.Context, refs []types.RepositoryRef) error {
	if len(refs) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository list is empty")
	}
	for _, ref := range refs {
		assert.NotEmpty(ctx, ref.URL, "repository url must be set")
		if _, _, err := shared.SplitRepoPath(ref.URL); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid repository url: %s", ref.URL)).
				WithCause(err)
		}
	}
	return nil
}
