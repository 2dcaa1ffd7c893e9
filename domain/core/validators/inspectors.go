package validators

import (
	"fmt"

	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
)

// Rejection reasons shared with tests and the boundary layer.
const (
	ReasonNoParents     = "node must reference at least one existing parent"
	ReasonUnknownParent = "parent does not exist in graph"
	ReasonNoToolCall    = "tool result must derive from a tool call"
	ReasonWouldCycle    = "edge would introduce a cycle"
	ReasonClaimSupport  = "claim must derive from at least one warrant, premise, or claim"
)

// OrphanPrevention rejects non-root proposals with no resolvable parents.
//
// The first node in an empty graph is an unconditional root. Premises and
// constraints are self-evident and never need parents. Every other kind
// needs at least one parent id, and every supplied parent must resolve.
type OrphanPrevention struct{}

// Name implements Inspector.
func (OrphanPrevention) Name() string { return "orphan_prevention" }

// Inspect implements Inspector.
func (OrphanPrevention) Inspect(p Proposal, g GraphView) Result {
	// Dangling references are rejected for every kind, roots included;
	// a proposal that names a parent must name a real one.
	for _, parentID := range p.ParentIDs {
		if _, exists := g.Node(parentID); !exists {
			return Reject(OrphanPrevention{}.Name(),
				fmt.Sprintf("%s: %s", ReasonUnknownParent, parentID))
		}
	}

	if g.NodeCount() == 0 {
		return Accept()
	}

	if p.Kind.IsSelfEvident() {
		return Accept()
	}

	if len(p.ParentIDs) == 0 {
		return Reject(OrphanPrevention{}.Name(), ReasonNoParents)
	}

	return Accept()
}

// ToolCausality requires every tool result to have at least one tool-call
// parent. All other kinds pass trivially.
type ToolCausality struct{}

// Name implements Inspector.
func (ToolCausality) Name() string { return "tool_causality" }

// Inspect implements Inspector.
func (ToolCausality) Inspect(p Proposal, g GraphView) Result {
	if p.Kind != entities.KindToolResult {
		return Accept()
	}

	for _, parentID := range p.ParentIDs {
		if parent, exists := g.Node(parentID); exists && parent.Kind() == entities.KindToolCall {
			return Accept()
		}
	}

	return Reject(ToolCausality{}.Name(), ReasonNoToolCall)
}

// Acyclicity verifies the committed subgraph stays a DAG.
//
// Under the current add-only-incoming-edges discipline a fresh node has no
// outgoing edges, so the check degenerates to a pass. It is still written
// as a general reachability check (forward BFS from the new node, which
// must not reach any of its own proposed parents) so the invariant holds
// if edges between pre-existing nodes are ever allowed.
type Acyclicity struct{}

// Name implements Inspector.
func (Acyclicity) Name() string { return "acyclicity" }

// Inspect implements Inspector.
func (Acyclicity) Inspect(p Proposal, g GraphView) Result {
	if len(p.ParentIDs) == 0 {
		return Accept()
	}

	parents := make(map[valueobjects.NodeID]bool, len(p.ParentIDs))
	for _, parentID := range p.ParentIDs {
		parents[parentID] = true
	}

	visited := map[valueobjects.NodeID]bool{p.NodeID: true}
	queue := []valueobjects.NodeID{p.NodeID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range g.ChildEdges(current) {
			next := edge.TargetID
			if parents[next] {
				return Reject(Acyclicity{}.Name(),
					fmt.Sprintf("%s: %s is reachable from the proposed node", ReasonWouldCycle, next))
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return Accept()
}

// TypeConsistency requires a claim with parents to rest on reasoning, not
// raw tool output: at least one parent must be a warrant, premise, or
// claim. A claim with zero parents is governed by OrphanPrevention alone.
type TypeConsistency struct{}

// Name implements Inspector.
func (TypeConsistency) Name() string { return "type_consistency" }

// Inspect implements Inspector.
func (TypeConsistency) Inspect(p Proposal, g GraphView) Result {
	if p.Kind != entities.KindClaim || len(p.ParentIDs) == 0 {
		return Accept()
	}

	for _, parentID := range p.ParentIDs {
		parent, exists := g.Node(parentID)
		if !exists {
			continue
		}
		switch parent.Kind() {
		case entities.KindWarrant, entities.KindPremise, entities.KindClaim:
			return Accept()
		}
	}

	return Reject(TypeConsistency{}.Name(), ReasonClaimSupport)
}
