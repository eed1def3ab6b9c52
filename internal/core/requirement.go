package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqmerge/internal/shared"
	"reqmerge/internal/types"
)

// namePattern matches a PEP 508 project name with optional extras at the
// start of a requirement line.
var namePattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(\[[A-Za-z0-9._\s,-]*\])?\s*`)

// sourceLinkPattern matches pip VCS requirements of the form
// git+https://host/owner/repo[@revision][#egg=name].
var sourceLinkPattern = regexp.MustCompile(`^git\+(https://[^@\s#]+)(?:@([^#\s]+))?(?:#egg=([A-Za-z0-9._-]+))?`)

// ClassifiedLine is the result of classifying one raw manifest line.
type ClassifiedLine struct {
	Kind        types.LineKind
	Requirement types.Requirement
	SourceLink  types.SourceLink
	Raw         string
}

// ClassifyLine sorts a manifest line into one of four buckets: skipped
// (blank or comment), a parseable name+specifier requirement, a source
// link to another repository, or an opaque line carried verbatim.
func ClassifyLine(raw string) ClassifiedLine {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return ClassifiedLine{Kind: types.LineKindSkip, Raw: line}
	}
	if req, err := ParseRequirement(line); err == nil {
		return ClassifiedLine{Kind: types.LineKindRequirement, Requirement: req, Raw: line}
	}
	if link, err := ParseSourceLink(line); err == nil {
		return ClassifiedLine{Kind: types.LineKindSourceLink, SourceLink: link, Raw: line}
	}
	return ClassifiedLine{Kind: types.LineKindOpaque, Raw: line}
}

// ParseRequirement parses a name+specifier requirement line. Extras and
// environment markers are accepted on input but dropped: only the
// normalized name and the specifier survive consolidation.
func ParseRequirement(line string) (types.Requirement, error) {
	reqPart := line
	if idx := strings.Index(reqPart, ";"); idx >= 0 {
		reqPart = reqPart[:idx]
	}
	reqPart = strings.TrimSpace(reqPart)
	match := namePattern.FindStringSubmatch(reqPart)
	if match == nil {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no project name in requirement: %s", line))
	}
	name := shared.NormalizePipName(match[1])
	rest := strings.TrimSpace(reqPart[len(match[0]):])
	if strings.HasPrefix(rest, "@") {
		// Direct URL reference: the URL is not a version constraint, so
		// only the bare name survives.
		return types.Requirement{Name: name}, nil
	}
	spec := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")"))
	normalized, err := NormalizeSpecifier(spec)
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{Name: name, Specifier: normalized}, nil
}

// ParseSourceLink extracts the repository URL, optional revision, and
// optional egg name from a git+ requirement line.
func ParseSourceLink(line string) (types.SourceLink, error) {
	match := sourceLinkPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return types.SourceLink{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("not a source link: %s", line))
	}
	repoURL := strings.TrimSuffix(match[1], ".git")
	return types.SourceLink{
		URL:  repoURL,
		Ref:  match[2],
		Name: shared.NormalizePipName(match[3]),
	}, nil
}
