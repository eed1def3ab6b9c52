package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqmerge/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	inputPath := strings.TrimSpace(req.InputPath)
	if inputPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	refs, err := s.RepoList.Load(inputPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := core.ValidateRefs(ctx, refs); err != nil {
		return ValidateResult{}, err
	}
	pinned := 0
	for _, ref := range refs {
		if ref.Ref != "" {
			pinned++
		}
	}
	return ValidateResult{Repositories: len(refs), Pinned: pinned}, nil
}
