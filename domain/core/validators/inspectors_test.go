package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uavi-backend/domain/core/aggregates"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
)

// graphWith builds an aggregate holding the given committed nodes and the
// edges connecting them, keyed by sequence number.
func graphWith(t *testing.T, kinds map[uint64]entities.NodeKind, edges [][2]uint64) *aggregates.Graph {
	t.Helper()
	g := aggregates.NewGraph(nil)

	for seq := uint64(1); ; seq++ {
		kind, ok := kinds[seq]
		if !ok {
			break
		}
		node, err := entities.NewNode(valueobjects.NodeIDFromSequence(seq), kind, valueobjects.NewContent("node"), nil)
		require.NoError(t, err)
		require.NoError(t, g.AddNode(node))
	}

	for _, pair := range edges {
		edge, err := entities.NewEdge(
			valueobjects.NodeIDFromSequence(pair[0]),
			valueobjects.NodeIDFromSequence(pair[1]),
			entities.EdgeDerivedFrom,
		)
		require.NoError(t, err)
		require.NoError(t, g.AppendEdge(edge))
	}

	return g
}

func proposal(seq uint64, kind entities.NodeKind, parentSeqs ...uint64) Proposal {
	parents := make([]valueobjects.NodeID, len(parentSeqs))
	for i, p := range parentSeqs {
		parents[i] = valueobjects.NodeIDFromSequence(p)
	}
	return Proposal{
		NodeID:    valueobjects.NodeIDFromSequence(seq),
		Kind:      kind,
		Content:   valueobjects.NewContent("candidate"),
		ParentIDs: parents,
	}
}

func TestOrphanPrevention(t *testing.T) {
	inspector := OrphanPrevention{}

	t.Run("first node in empty graph passes regardless of kind", func(t *testing.T) {
		g := aggregates.NewGraph(nil)
		result := inspector.Inspect(proposal(1, entities.KindClaim), g)
		assert.True(t, result.Valid)
	})

	t.Run("self-evident kinds never need parents", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		assert.True(t, inspector.Inspect(proposal(2, entities.KindPremise), g).Valid)
		assert.True(t, inspector.Inspect(proposal(2, entities.KindConstraint), g).Valid)
	})

	t.Run("derived kinds need a parent in a non-empty graph", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		result := inspector.Inspect(proposal(2, entities.KindClaim), g)
		assert.False(t, result.Valid)
		assert.Equal(t, "orphan_prevention", result.Inspector)
		assert.Equal(t, ReasonNoParents, result.Reason)
	})

	t.Run("unknown parent is rejected even in an empty graph", func(t *testing.T) {
		g := aggregates.NewGraph(nil)
		result := inspector.Inspect(proposal(1, entities.KindPremise, 99), g)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Reason, ReasonUnknownParent)
	})

	t.Run("resolvable parent passes", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		assert.True(t, inspector.Inspect(proposal(2, entities.KindWarrant, 1), g).Valid)
	})
}

func TestToolCausality(t *testing.T) {
	inspector := ToolCausality{}

	t.Run("tool result with a tool call parent passes", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindPremise,
			2: entities.KindToolCall,
		}, [][2]uint64{{1, 2}})
		assert.True(t, inspector.Inspect(proposal(3, entities.KindToolResult, 2), g).Valid)
	})

	t.Run("tool result without a tool call parent is rejected", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		result := inspector.Inspect(proposal(2, entities.KindToolResult, 1), g)
		assert.False(t, result.Valid)
		assert.Equal(t, "tool_causality", result.Inspector)
		assert.Equal(t, ReasonNoToolCall, result.Reason)
	})

	t.Run("one tool call among mixed parents suffices", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindPremise,
			2: entities.KindToolCall,
		}, [][2]uint64{{1, 2}})
		assert.True(t, inspector.Inspect(proposal(3, entities.KindToolResult, 1, 2), g).Valid)
	})

	t.Run("other kinds are untouched", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		assert.True(t, inspector.Inspect(proposal(2, entities.KindWarrant, 1), g).Valid)
	})
}

func TestAcyclicity(t *testing.T) {
	inspector := Acyclicity{}

	t.Run("fresh node with existing parents passes", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindPremise,
			2: entities.KindWarrant,
		}, [][2]uint64{{1, 2}})
		assert.True(t, inspector.Inspect(proposal(3, entities.KindClaim, 2), g).Valid)
	})

	t.Run("rejects when a proposed parent is reachable from the node", func(t *testing.T) {
		// Simulate a candidate that somehow already has an outgoing
		// edge to its proposed parent.
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindPremise,
			2: entities.KindWarrant,
			3: entities.KindClaim,
		}, [][2]uint64{{1, 2}, {3, 2}})

		// Proposing n3 again with n2 as parent: n2 is reachable from n3.
		result := inspector.Inspect(proposal(3, entities.KindClaim, 2), g)
		assert.False(t, result.Valid)
		assert.Equal(t, "acyclicity", result.Inspector)
		assert.Contains(t, result.Reason, ReasonWouldCycle)
	})

	t.Run("parentless proposals pass trivially", func(t *testing.T) {
		g := aggregates.NewGraph(nil)
		assert.True(t, inspector.Inspect(proposal(1, entities.KindPremise), g).Valid)
	})
}

func TestTypeConsistency(t *testing.T) {
	inspector := TypeConsistency{}

	t.Run("claim over a warrant passes", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindPremise,
			2: entities.KindWarrant,
		}, [][2]uint64{{1, 2}})
		assert.True(t, inspector.Inspect(proposal(3, entities.KindClaim, 2), g).Valid)
	})

	t.Run("claim resting only on tool output is rejected", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{
			1: entities.KindToolCall,
			2: entities.KindToolResult,
		}, [][2]uint64{{1, 2}})
		result := inspector.Inspect(proposal(3, entities.KindClaim, 2), g)
		assert.False(t, result.Valid)
		assert.Equal(t, "type_consistency", result.Inspector)
		assert.Equal(t, ReasonClaimSupport, result.Reason)
	})

	t.Run("non-claims pass", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindToolCall}, nil)
		assert.True(t, inspector.Inspect(proposal(2, entities.KindRebuttal, 1), g).Valid)
	})
}

func TestChain(t *testing.T) {
	t.Run("default chain order", func(t *testing.T) {
		assert.Equal(t,
			[]string{"orphan_prevention", "tool_causality", "acyclicity", "type_consistency"},
			DefaultChain().Names(),
		)
	})

	t.Run("short-circuits on first failure", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)

		// A parentless tool result fails both orphan prevention and tool
		// causality; the reported inspector must be the first.
		result := DefaultChain().Inspect(proposal(2, entities.KindToolResult), g)
		assert.False(t, result.Valid)
		assert.Equal(t, "orphan_prevention", result.Inspector)
	})

	t.Run("accepts when every inspector passes", func(t *testing.T) {
		g := graphWith(t, map[uint64]entities.NodeKind{1: entities.KindPremise}, nil)
		result := DefaultChain().Inspect(proposal(2, entities.KindWarrant, 1), g)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Inspector)
		assert.Empty(t, result.Reason)
	})
}
