package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqmerge/internal/types"
)

const (
	ConflictActionWarn = "warn"
	ConflictActionFail = "fail"
)

// ConflictPolicy decides what a run does with detectably unsatisfiable
// specifier merges. Warn keeps the run alive after logging; fail aborts
// it once all output has been written.
type ConflictPolicy struct {
	Action string
}

func NewConflictPolicy(action string) (ConflictPolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(action))
	if normalized == "" {
		normalized = ConflictActionWarn
	}
	switch normalized {
	case ConflictActionWarn, ConflictActionFail:
		return ConflictPolicy{Action: normalized}, nil
	default:
		return ConflictPolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown conflict action: %s", action))
	}
}

func (p ConflictPolicy) Apply(conflicts []types.SpecifierConflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	for _, conflict := range conflicts {
		log.Warn().
			Str("package", conflict.Name).
			Str("specifier", conflict.Specifier).
			Msg(conflict.Detail)
	}
	if p.Action == ConflictActionFail {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conflict without resolution: %d unsatisfiable package(s)", len(conflicts)))
	}
	return nil
}
