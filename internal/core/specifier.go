package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqmerge/internal/types"
)

// opTokens is the ordered list of specifier operators tried during
// clause parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. "===" before "==", ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpEq3,
	types.ConstraintOpEq,
	types.ConstraintOpNe,
	types.ConstraintOpCompat,
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// clause is a single parsed specifier clause such as ">=1.0".
type clause struct {
	op      types.ConstraintOp
	version string
}

func (c clause) String() string {
	return string(c.op) + c.version
}

func parseClause(raw string) (clause, error) {
	raw = strings.TrimSpace(raw)
	for _, op := range opTokens {
		if strings.HasPrefix(raw, string(op)) {
			version := strings.TrimSpace(strings.TrimPrefix(raw, string(op)))
			if version == "" {
				return clause{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("specifier clause without version: %s", raw))
			}
			return clause{op: op, version: version}, nil
		}
	}
	return clause{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("specifier clause without operator: %s", raw))
}

func parseClauses(spec string) ([]clause, error) {
	var out []clause
	for _, part := range strings.Split(spec, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		parsed, err := parseClause(part)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// NormalizeSpecifier validates a specifier expression against PEP 440
// and rewrites it into canonical form: whitespace stripped, clauses
// deduplicated and sorted, joined with commas.
func NormalizeSpecifier(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := pep440.NewSpecifiers(raw); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid specifier: %s", raw)).
			WithCause(err)
	}
	clauses, err := parseClauses(raw)
	if err != nil {
		return "", err
	}
	seen := map[string]struct{}{}
	var parts []string
	for _, c := range clauses {
		text := c.String()
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		parts = append(parts, text)
	}
	sort.Strings(parts)
	return strings.Join(parts, ","), nil
}

// MergeSpecifiers intersects two specifier expressions. The PEP 440
// intersection of two specifier sets is the union of their clauses: a
// version satisfies the merged expression iff it satisfies both inputs.
// Merging is commutative, so traversal order never changes the result.
func MergeSpecifiers(a string, b string) (string, error) {
	if a == "" {
		return NormalizeSpecifier(b)
	}
	if b == "" {
		return NormalizeSpecifier(a)
	}
	return NormalizeSpecifier(a + "," + b)
}

// CheckConflict reports whether a specifier expression is detectably
// unsatisfiable: a pinned version excluded by another clause, or a lower
// bound above the upper bound. Full satisfiability needs a version
// universe, so this only surfaces the contradictions that can be decided
// from the clauses alone.
func CheckConflict(spec string) (string, bool) {
	if spec == "" {
		return "", false
	}
	set, err := pep440.NewSpecifiers(spec)
	if err != nil {
		return "", false
	}
	clauses, err := parseClauses(spec)
	if err != nil {
		return "", false
	}

	for _, c := range clauses {
		if c.op != types.ConstraintOpEq && c.op != types.ConstraintOpEq3 {
			continue
		}
		// Wildcard pins such as ==1.* are not single versions.
		if strings.Contains(c.version, "*") {
			continue
		}
		pinned, err := pep440.Parse(c.version)
		if err != nil {
			continue
		}
		if !set.Check(pinned) {
			return fmt.Sprintf("pin %s is excluded by %s", c.String(), spec), true
		}
	}

	var lower, upper *clause
	var lowerVersion, upperVersion pep440.Version
	for i := range clauses {
		c := clauses[i]
		parsed, err := pep440.Parse(c.version)
		if err != nil {
			continue
		}
		switch c.op {
		case types.ConstraintOpGt, types.ConstraintOpGte:
			if lower == nil || parsed.GreaterThan(lowerVersion) {
				lower = &clauses[i]
				lowerVersion = parsed
			}
		case types.ConstraintOpLt, types.ConstraintOpLte:
			if upper == nil || parsed.LessThan(upperVersion) {
				upper = &clauses[i]
				upperVersion = parsed
			}
		}
	}
	if lower != nil && upper != nil {
		strict := lower.op == types.ConstraintOpGt || upper.op == types.ConstraintOpLt
		cmp := lowerVersion.Compare(upperVersion)
		if cmp > 0 || (cmp == 0 && strict) {
			return fmt.Sprintf("bound %s contradicts %s", lower.String(), upper.String()), true
		}
	}
	return "", false
}
