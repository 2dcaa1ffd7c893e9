// Package validators implements the inspector chain gating proposal
// commitment. Each inspector is a pure predicate over the proposal and the
// current graph state; the chain evaluates them in a fixed order and stops
// at the first failure.
package validators

import (
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
)

// GraphView is the read-only slice of graph state the inspectors consult.
// *aggregates.Graph satisfies it.
type GraphView interface {
	Node(id valueobjects.NodeID) (*entities.Node, bool)
	NodeCount() int
	ChildEdges(id valueobjects.NodeID) []*entities.Edge
}

// Proposal is a candidate node before commitment. NodeID is the identifier
// the kernel has pre-allocated for it; the node itself is not yet in the
// graph while the chain runs.
type Proposal struct {
	NodeID    valueobjects.NodeID
	Kind      entities.NodeKind
	Content   valueobjects.Content
	ParentIDs []valueobjects.NodeID
	EdgeKinds []entities.EdgeKind
	Metadata  entities.Metadata
}

// EdgeKindFor returns the edge kind for the i-th parent, falling back to
// the default when the proposal did not name one.
func (p Proposal) EdgeKindFor(i int) entities.EdgeKind {
	if i < len(p.EdgeKinds) && p.EdgeKinds[i] != "" {
		return p.EdgeKinds[i]
	}
	return entities.DefaultEdgeKind
}

// Result is the outcome of inspecting a proposal.
type Result struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Inspector string `json:"inspector,omitempty"`
}

// Accept returns a passing result.
func Accept() Result {
	return Result{Valid: true}
}

// Reject returns a failing result attributed to an inspector.
func Reject(inspector, reason string) Result {
	return Result{Valid: false, Reason: reason, Inspector: inspector}
}

// Inspector is a named validation predicate.
type Inspector interface {
	Name() string
	Inspect(p Proposal, g GraphView) Result
}

// Chain evaluates inspectors in order, short-circuiting on the first
// failure. That failure is the outcome for the whole proposal.
type Chain struct {
	inspectors []Inspector
}

// NewChain creates a chain from an explicit inspector order.
func NewChain(inspectors ...Inspector) *Chain {
	return &Chain{inspectors: inspectors}
}

// DefaultChain returns the required inspectors in their required order.
func DefaultChain() *Chain {
	return NewChain(
		OrphanPrevention{},
		ToolCausality{},
		Acyclicity{},
		TypeConsistency{},
	)
}

// Inspect runs the chain against a proposal.
func (c *Chain) Inspect(p Proposal, g GraphView) Result {
	for _, inspector := range c.inspectors {
		if result := inspector.Inspect(p, g); !result.Valid {
			return result
		}
	}
	return Accept()
}

// Names returns the inspector names in evaluation order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.inspectors))
	for i, inspector := range c.inspectors {
		names[i] = inspector.Name()
	}
	return names
}
