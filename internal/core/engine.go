package core

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqmerge/internal/ports"
	"reqmerge/internal/types"
)

// DefaultFetchDelay is the courtesy throttle inserted after each
// repository fetch to avoid remote API rate limits.
const DefaultFetchDelay = 100 * time.Millisecond

// Engine walks a set of repositories, following source links into other
// repositories, and consolidates every manifest into one constraint set.
type Engine struct {
	Host       ports.RepoHostPort
	FetchDelay time.Duration
}

func NewEngine(host ports.RepoHostPort, fetchDelay time.Duration) Engine {
	if fetchDelay <= 0 {
		fetchDelay = DefaultFetchDelay
	}
	return Engine{Host: host, FetchDelay: fetchDelay}
}

// ConsolidationResult is the outcome of one traversal: merged
// requirements (one entry per normalized name, sorted), opaque lines
// carried verbatim (sorted, deduplicated), and the traversal report.
type ConsolidationResult struct {
	Requirements []types.Requirement
	Opaque       []string
	Report       types.TraversalReport
}

type workItem struct {
	ref    types.RepositoryRef
	origin types.RefOrigin
}

// Consolidate fetches and merges the manifests of the given repositories
// plus every repository discovered through source links. Per-repository
// failures are logged and recovered; the traversal itself only fails on
// a missing host port or context cancellation.
func (e Engine) Consolidate(ctx context.Context, refs []types.RepositoryRef) (ConsolidationResult, error) {
	if e.Host == nil {
		return ConsolidationResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("consolidation engine requires a repository host port")
	}

	visited := map[types.RepoKey]struct{}{}
	merged := map[string]string{}
	opaque := map[string]struct{}{}
	report := types.TraversalReport{}

	// Explicit worklist instead of call-stack recursion so deep source
	// link chains cannot overflow. Inputs are pushed in reverse to keep
	// pop order aligned with input order.
	stack := make([]workItem, 0, len(refs))
	for i := len(refs) - 1; i >= 0; i-- {
		stack = append(stack, workItem{ref: refs[i], origin: types.RefOriginInput})
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return ConsolidationResult{}, err
		}
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		repoURL := NormalizeRepoURL(item.ref.URL)
		if repoURL == "" {
			log.Warn().Str("url", item.ref.URL).Msg("skipping repository with empty url")
			continue
		}

		ref := strings.TrimSpace(item.ref.Ref)
		if ref == "" {
			resolved, err := e.Host.DefaultBranch(ctx, repoURL)
			if err != nil {
				log.Warn().Str("url", repoURL).Err(err).
					Msg("skipping repository without resolvable ref")
				report.Failures = append(report.Failures, types.FetchFailure{
					URL:    repoURL,
					Reason: err.Error(),
				})
				continue
			}
			ref = resolved
		}

		key := types.RepoKey{URL: repoURL, Ref: ref}
		if _, seen := visited[key]; seen {
			continue
		}
		// Marked before fetching so each (repo, ref) pair is fetched at
		// most once even when rediscovered mid-traversal.
		visited[key] = struct{}{}

		manifest, err := e.Host.FetchManifest(ctx, types.RepositoryRef{URL: repoURL, Ref: ref})
		e.throttle(ctx)
		if err != nil {
			log.Warn().Str("url", repoURL).Str("ref", ref).Err(err).
				Msg("manifest fetch failed, repository contributes nothing")
			report.Failures = append(report.Failures, types.FetchFailure{
				URL:    repoURL,
				Ref:    ref,
				Reason: err.Error(),
			})
			report.Visited = append(report.Visited, types.VisitedRepository{
				URL:    repoURL,
				Ref:    ref,
				Origin: item.origin,
			})
			continue
		}

		count := 0
		for _, rawLine := range strings.Split(string(manifest), "\n") {
			classified := ClassifyLine(rawLine)
			switch classified.Kind {
			case types.LineKindRequirement:
				count++
				mergeRequirement(merged, classified.Requirement)
			case types.LineKindSourceLink:
				count++
				stack = append(stack, workItem{
					ref: types.RepositoryRef{
						URL: classified.SourceLink.URL,
						Ref: classified.SourceLink.Ref,
					},
					origin: types.RefOriginSourceLink,
				})
			case types.LineKindOpaque:
				count++
				log.Debug().Str("line", classified.Raw).
					Msg("unparseable requirement kept verbatim")
				opaque[classified.Raw] = struct{}{}
			}
		}
		report.Visited = append(report.Visited, types.VisitedRepository{
			URL:          repoURL,
			Ref:          ref,
			Origin:       item.origin,
			Requirements: count,
		})
	}

	result := ConsolidationResult{Report: report}
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := merged[name]
		if detail, conflicted := CheckConflict(spec); conflicted {
			result.Report.Conflicts = append(result.Report.Conflicts, types.SpecifierConflict{
				Name:      name,
				Specifier: spec,
				Detail:    detail,
			})
		}
		result.Requirements = append(result.Requirements, types.Requirement{
			Name:      name,
			Specifier: spec,
		})
	}
	for line := range opaque {
		result.Opaque = append(result.Opaque, line)
	}
	sort.Strings(result.Opaque)
	result.Report.Packages = len(result.Requirements)
	result.Report.Opaque = len(result.Opaque)
	return result, nil
}

// mergeRequirement folds one requirement into the constraint set by
// specifier intersection. A merge of two already-normalized specifiers
// cannot fail; the error branch keeps the existing constraint and logs.
func mergeRequirement(merged map[string]string, req types.Requirement) {
	existing, ok := merged[req.Name]
	if !ok {
		merged[req.Name] = req.Specifier
		return
	}
	combined, err := MergeSpecifiers(existing, req.Specifier)
	if err != nil {
		log.Warn().Str("package", req.Name).Err(err).
			Msg("specifier merge failed, keeping existing constraint")
		return
	}
	merged[req.Name] = combined
}

// throttle sleeps for the courtesy delay, returning early on context
// cancellation. The cancellation itself is observed at the top of the
// worklist loop.
func (e Engine) throttle(ctx context.Context) {
	if e.FetchDelay <= 0 {
		return
	}
	timer := time.NewTimer(e.FetchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// NormalizeRepoURL canonicalizes a repository URL for identity
// comparison: scheme and host lowercased, query and fragment dropped,
// trailing slash and ".git" suffix stripped.
func NormalizeRepoURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimSuffix(trimmed, "/"), ".git")
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(strings.TrimSuffix(parsed.Path, "/"), ".git")
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}
