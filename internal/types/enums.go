package types

type LineKind string

const (
	LineKindSkip        LineKind = "skip"
	LineKindRequirement LineKind = "requirement"
	LineKindSourceLink  LineKind = "source-link"
	LineKindOpaque      LineKind = "opaque"
)

type RefOrigin string

const (
	RefOriginInput      RefOrigin = "input"
	RefOriginSourceLink RefOrigin = "source-link"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq3    ConstraintOp = "==="
	ConstraintOpEq     ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)
