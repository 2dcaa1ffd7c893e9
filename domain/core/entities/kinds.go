package entities

import "fmt"

// NodeKind is the semantic role of a reasoning unit. The set is closed:
// adding a kind requires updating every switch over it.
type NodeKind string

const (
	KindPremise    NodeKind = "premise"
	KindWarrant    NodeKind = "warrant"
	KindClaim      NodeKind = "claim"
	KindToolCall   NodeKind = "tool_call"
	KindToolResult NodeKind = "tool_result"
	KindConstraint NodeKind = "constraint"
	KindRebuttal   NodeKind = "rebuttal"

	// KindError is reserved for rejected proposals and is never accepted
	// as a proposed kind.
	KindError NodeKind = "error"
)

// ProposableKinds lists every kind a caller may propose, in declaration order.
func ProposableKinds() []NodeKind {
	return []NodeKind{
		KindPremise,
		KindWarrant,
		KindClaim,
		KindToolCall,
		KindToolResult,
		KindConstraint,
		KindRebuttal,
	}
}

// ParseNodeKind parses an externally supplied kind string.
func ParseNodeKind(s string) (NodeKind, error) {
	switch NodeKind(s) {
	case KindPremise, KindWarrant, KindClaim, KindToolCall,
		KindToolResult, KindConstraint, KindRebuttal, KindError:
		return NodeKind(s), nil
	default:
		return "", fmt.Errorf("unknown node kind %q", s)
	}
}

// IsProposable reports whether a caller may propose a node of this kind.
func (k NodeKind) IsProposable() bool {
	switch k {
	case KindPremise, KindWarrant, KindClaim, KindToolCall,
		KindToolResult, KindConstraint, KindRebuttal:
		return true
	case KindError:
		return false
	default:
		return false
	}
}

// IsSelfEvident reports whether this kind may stand without parents even in
// a non-empty graph. Premises and constraints are self-evident roots.
func (k NodeKind) IsSelfEvident() bool {
	return k == KindPremise || k == KindConstraint
}

// String returns the string representation.
func (k NodeKind) String() string {
	return string(k)
}

// EdgeKind is the causal relationship carried by an edge.
type EdgeKind string

const (
	EdgeDerivedFrom   EdgeKind = "derived_from"
	EdgeSupportedBy   EdgeKind = "supported_by"
	EdgeConstrainedBy EdgeKind = "constrained_by"
	EdgeAttacks       EdgeKind = "attacks"
	EdgeRefines       EdgeKind = "refines"
	EdgePrecedes      EdgeKind = "precedes"
)

// DefaultEdgeKind is used when a proposal does not name an edge kind for a
// parent.
const DefaultEdgeKind = EdgeDerivedFrom

// ParseEdgeKind parses an externally supplied edge kind string.
func ParseEdgeKind(s string) (EdgeKind, error) {
	switch EdgeKind(s) {
	case EdgeDerivedFrom, EdgeSupportedBy, EdgeConstrainedBy,
		EdgeAttacks, EdgeRefines, EdgePrecedes:
		return EdgeKind(s), nil
	default:
		return "", fmt.Errorf("unknown edge kind %q", s)
	}
}

// String returns the string representation.
func (k EdgeKind) String() string {
	return string(k)
}
