package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uavi-backend/domain/config"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
	pkgerrors "uavi-backend/pkg/errors"
)

func newKernel(t *testing.T) *Kernel {
	t.Helper()
	return New(config.DefaultDomainConfig())
}

// commit proposes and requires the proposal to be accepted.
func commit(t *testing.T, k *Kernel, kind entities.NodeKind, content string, parents ...valueobjects.NodeID) *entities.Node {
	t.Helper()
	result, err := k.Propose(ProposeRequest{Kind: kind, Content: content, ParentIDs: parents})
	require.NoError(t, err)
	require.True(t, result.Outcome.Valid, "expected commit, got rejection: %s", result.Outcome.Reason)
	return result.Node
}

// reject proposes and requires the proposal to be rejected.
func reject(t *testing.T, k *Kernel, kind entities.NodeKind, content string, parents ...valueobjects.NodeID) *ProposeResult {
	t.Helper()
	result, err := k.Propose(ProposeRequest{Kind: kind, Content: content, ParentIDs: parents})
	require.NoError(t, err)
	require.False(t, result.Outcome.Valid, "expected rejection, got commit")
	return result
}

func TestProposeRoots(t *testing.T) {
	t.Run("first node is always accepted", func(t *testing.T) {
		k := newKernel(t)
		node := commit(t, k, entities.KindClaim, "an unsupported opening claim")
		assert.Equal(t, "n1", node.ID().String())
	})

	t.Run("premises and constraints stand without parents", func(t *testing.T) {
		k := newKernel(t)
		commit(t, k, entities.KindPremise, "first")
		commit(t, k, entities.KindPremise, "second")
		commit(t, k, entities.KindConstraint, "budget under 100")
	})

	t.Run("ids are sequential", func(t *testing.T) {
		k := newKernel(t)
		a := commit(t, k, entities.KindPremise, "a")
		b := commit(t, k, entities.KindPremise, "b")
		assert.Equal(t, "n1", a.ID().String())
		assert.Equal(t, "n2", b.ID().String())
	})
}

func TestProposeRejections(t *testing.T) {
	t.Run("orphan is rejected and recorded", func(t *testing.T) {
		k := newKernel(t)
		commit(t, k, entities.KindPremise, "root")

		result := reject(t, k, entities.KindClaim, "floating claim")
		assert.Equal(t, "orphan_prevention", result.Outcome.Inspector)
		assert.Equal(t, entities.KindError, result.Node.Kind())
		assert.False(t, result.Node.IsValid())

		originalKind, ok := result.Node.Metadata().StringValue(entities.MetaOriginalKind)
		require.True(t, ok)
		assert.Equal(t, "claim", originalKind)
	})

	t.Run("rejection adds a node but no edges", func(t *testing.T) {
		k := newKernel(t)
		root := commit(t, k, entities.KindPremise, "root")

		before := k.Snapshot()
		reject(t, k, entities.KindToolResult, "unprovoked result", root.ID())
		after := k.Snapshot()

		assert.Equal(t, before.NodeCount+1, after.NodeCount)
		assert.Equal(t, before.EdgeCount, after.EdgeCount)
	})

	t.Run("error node is permanent and retrievable", func(t *testing.T) {
		k := newKernel(t)
		commit(t, k, entities.KindPremise, "root")
		result := reject(t, k, entities.KindClaim, "floating")

		got, err := k.GetNode(result.Node.ID())
		require.NoError(t, err)
		assert.Equal(t, entities.KindError, got.Kind())
	})

	t.Run("rejected id is consumed, not reused", func(t *testing.T) {
		k := newKernel(t)
		commit(t, k, entities.KindPremise, "root")
		rejected := reject(t, k, entities.KindClaim, "floating")
		next := commit(t, k, entities.KindPremise, "another root")

		assert.Equal(t, "n2", rejected.Node.ID().String())
		assert.Equal(t, "n3", next.ID().String())
	})

	t.Run("unknown parent is rejected", func(t *testing.T) {
		k := newKernel(t)
		ghost := valueobjects.NodeIDFromSequence(99)
		result := reject(t, k, entities.KindWarrant, "on nothing", ghost)
		assert.Equal(t, "orphan_prevention", result.Outcome.Inspector)
	})
}

func TestProposeMalformed(t *testing.T) {
	k := newKernel(t)

	t.Run("error kind cannot be proposed", func(t *testing.T) {
		_, err := k.Propose(ProposeRequest{Kind: entities.KindError, Content: "x"})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("more edge kinds than parents", func(t *testing.T) {
		_, err := k.Propose(ProposeRequest{
			Kind:      entities.KindPremise,
			Content:   "x",
			EdgeKinds: []entities.EdgeKind{entities.EdgeDerivedFrom},
		})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("malformed requests consume no ids", func(t *testing.T) {
		node := commit(t, k, entities.KindPremise, "first real node")
		assert.Equal(t, "n1", node.ID().String())
	})
}

func TestProposeCapacity(t *testing.T) {
	t.Run("edge cap rejects the whole proposal", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxEdgesPerGraph = 2
		k := New(cfg)

		p1 := commit(t, k, entities.KindPremise, "p1")
		p2 := commit(t, k, entities.KindPremise, "p2")
		p3 := commit(t, k, entities.KindPremise, "p3")
		commit(t, k, entities.KindWarrant, "w", p1.ID())

		before := k.Snapshot()
		require.Equal(t, 1, before.EdgeCount)

		// One edge slot left; a three-parent proposal must not land at all.
		_, err := k.Propose(ProposeRequest{
			Kind:      entities.KindWarrant,
			Content:   "overflowing",
			ParentIDs: []valueobjects.NodeID{p1.ID(), p2.ID(), p3.ID()},
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))

		after := k.Snapshot()
		assert.Equal(t, before.NodeCount, after.NodeCount)
		assert.Equal(t, before.EdgeCount, after.EdgeCount)
		_, err = k.GetNode(valueobjects.NodeIDFromSequence(5))
		assert.True(t, pkgerrors.IsNotFound(err))

		// The refused proposal consumed no id either.
		next := commit(t, k, entities.KindWarrant, "fits", p2.ID())
		assert.Equal(t, "n5", next.ID().String())
	})

	t.Run("node cap rejects before any mutation", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxNodesPerGraph = 1
		k := New(cfg)

		commit(t, k, entities.KindPremise, "only")

		_, err := k.Propose(ProposeRequest{Kind: entities.KindPremise, Content: "one too many"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
		assert.Equal(t, 1, k.Snapshot().NodeCount)
	})
}

func TestProposeEdgeKinds(t *testing.T) {
	k := newKernel(t)
	premise := commit(t, k, entities.KindPremise, "p")
	warrant := commit(t, k, entities.KindWarrant, "w", premise.ID())

	result, err := k.Propose(ProposeRequest{
		Kind:      entities.KindClaim,
		Content:   "c",
		ParentIDs: []valueobjects.NodeID{premise.ID(), warrant.ID()},
		EdgeKinds: []entities.EdgeKind{entities.EdgeSupportedBy},
	})
	require.NoError(t, err)
	require.True(t, result.Outcome.Valid)

	snapshot := k.Snapshot()
	require.Len(t, snapshot.Edges, 3)
	// Named kind for the first parent, default for the unnamed second.
	assert.Equal(t, entities.EdgeSupportedBy, snapshot.Edges[1].Kind)
	assert.Equal(t, entities.EdgeDerivedFrom, snapshot.Edges[2].Kind)
}

func TestToolCausalityLifecycle(t *testing.T) {
	k := newKernel(t)
	premise := commit(t, k, entities.KindPremise, "user asked about hours")
	call := commit(t, k, entities.KindToolCall, "look up opening hours", premise.ID())
	commit(t, k, entities.KindToolResult, "open 9-17", call.ID())

	result := reject(t, k, entities.KindToolResult, "spontaneous result", premise.ID())
	assert.Equal(t, "tool_causality", result.Outcome.Inspector)
}

func TestGetContext(t *testing.T) {
	k := newKernel(t)
	p1 := commit(t, k, entities.KindPremise, "p1")
	p2 := commit(t, k, entities.KindPremise, "p2")
	w := commit(t, k, entities.KindWarrant, "w", p1.ID(), p2.ID())
	c := commit(t, k, entities.KindClaim, "c", w.ID())

	t.Run("collects all valid ancestors", func(t *testing.T) {
		cone, err := k.GetContext(c.ID(), 10)
		require.NoError(t, err)
		assert.Equal(t, c.ID(), cone.RootID)
		assert.Len(t, cone.Nodes, 4)
		assert.Len(t, cone.Edges, 3)
	})

	t.Run("depth bounds the cone", func(t *testing.T) {
		cone, err := k.GetContext(c.ID(), 1)
		require.NoError(t, err)
		// c and w only; the premises are two hops away.
		assert.Len(t, cone.Nodes, 2)
		assert.Len(t, cone.Edges, 1)
	})

	t.Run("zero depth selects the configured default", func(t *testing.T) {
		cone, err := k.GetContext(c.ID(), 0)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultDomainConfig().DefaultTraversalDepth, cone.MaxDepth)
		assert.Len(t, cone.Nodes, 4)
	})

	t.Run("error nodes never appear in a cone", func(t *testing.T) {
		rejected := reject(t, k, entities.KindClaim, "floating")
		cone, err := k.GetContext(rejected.Node.ID(), 10)
		require.NoError(t, err)
		assert.Empty(t, cone.Nodes)
		assert.Empty(t, cone.Edges)
	})

	t.Run("unknown node is not found", func(t *testing.T) {
		_, err := k.GetContext(valueobjects.NodeIDFromSequence(99), 10)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestGetReasoningChain(t *testing.T) {
	k := newKernel(t)
	p := commit(t, k, entities.KindPremise, "p")
	w := commit(t, k, entities.KindWarrant, "w", p.ID())
	c := commit(t, k, entities.KindClaim, "c", w.ID())

	t.Run("follows first parents root to claim", func(t *testing.T) {
		chain, err := k.GetReasoningChain(c.ID())
		require.NoError(t, err)
		require.Equal(t, 3, chain.Length)
		assert.Equal(t, p.ID(), chain.Nodes[0].ID())
		assert.Equal(t, w.ID(), chain.Nodes[1].ID())
		assert.Equal(t, c.ID(), chain.Nodes[2].ID())
		assert.Len(t, chain.Edges, 2)
	})

	t.Run("root node yields a single-element chain", func(t *testing.T) {
		chain, err := k.GetReasoningChain(p.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, chain.Length)
		assert.Empty(t, chain.Edges)
	})

	t.Run("first-recorded parent wins on fan-in", func(t *testing.T) {
		other := commit(t, k, entities.KindPremise, "other root")
		merged := commit(t, k, entities.KindWarrant, "merged", w.ID(), other.ID())

		chain, err := k.GetReasoningChain(merged.ID())
		require.NoError(t, err)
		require.Equal(t, 3, chain.Length)
		assert.Equal(t, p.ID(), chain.Nodes[0].ID())
		assert.Equal(t, w.ID(), chain.Nodes[1].ID())
	})

	t.Run("chain agrees with an unbounded context cone", func(t *testing.T) {
		chain, err := k.GetReasoningChain(c.ID())
		require.NoError(t, err)
		cone, err := k.GetContext(c.ID(), 100)
		require.NoError(t, err)

		inCone := make(map[string]bool, len(cone.Nodes))
		for _, node := range cone.Nodes {
			inCone[node.ID().String()] = true
		}
		for _, node := range chain.Nodes {
			assert.True(t, inCone[node.ID().String()], "chain node %s missing from cone", node.ID())
		}
	})
}

func TestQuery(t *testing.T) {
	k := newKernel(t)
	commit(t, k, entities.KindPremise, "the sky is blue")
	commit(t, k, entities.KindPremise, "the sea is blue")
	claim := commit(t, k, entities.KindClaim, "blue things abound", valueobjects.NodeIDFromSequence(1))
	commit(t, k, entities.KindPremise, "grass is green")
	reject(t, k, entities.KindToolResult, "blue tool output", claim.ID())

	t.Run("case-insensitive substring over valid nodes", func(t *testing.T) {
		matches := k.Query("BLUE", nil)
		assert.Len(t, matches, 3)
	})

	t.Run("kind filter", func(t *testing.T) {
		kind := entities.KindClaim
		matches := k.Query("blue", &kind)
		require.Len(t, matches, 1)
		assert.Equal(t, claim.ID(), matches[0].ID())
	})

	t.Run("error nodes are excluded even on content match", func(t *testing.T) {
		matches := k.Query("tool output", nil)
		assert.Empty(t, matches)
	})

	t.Run("results follow insertion order", func(t *testing.T) {
		matches := k.Query("blue", nil)
		require.Len(t, matches, 3)
		assert.Equal(t, "n1", matches[0].ID().String())
		assert.Equal(t, "n2", matches[1].ID().String())
		assert.Equal(t, "n3", matches[2].ID().String())
	})
}

func TestReset(t *testing.T) {
	k := newKernel(t)
	p := commit(t, k, entities.KindPremise, "p")
	commit(t, k, entities.KindWarrant, "w", p.ID())

	k.Reset()

	snapshot := k.Snapshot()
	assert.Equal(t, 0, snapshot.NodeCount)
	assert.Equal(t, 0, snapshot.EdgeCount)

	// The id sequence restarts.
	fresh := commit(t, k, entities.KindPremise, "fresh")
	assert.Equal(t, "n1", fresh.ID().String())
}

// TestRestaurantScenario walks the canonical lifecycle end to end: a
// grounded tool interaction, a rejected shortcut, and the resulting
// provenance chain and snapshot.
func TestRestaurantScenario(t *testing.T) {
	k := newKernel(t)

	a := commit(t, k, entities.KindPremise, "user wants to book a table for four")
	b := commit(t, k, entities.KindToolCall, "check availability at 19:00", a.ID())
	c := commit(t, k, entities.KindToolResult, "table available at 19:00", b.ID())

	// A tool result claiming to derive straight from the premise is
	// rejected but still recorded.
	d := reject(t, k, entities.KindToolResult, "table available at 20:00", a.ID())
	assert.Equal(t, "tool_causality", d.Outcome.Inspector)
	assert.Equal(t, entities.KindError, d.Node.Kind())

	chain, err := k.GetReasoningChain(c.ID())
	require.NoError(t, err)
	require.Equal(t, 3, chain.Length)
	assert.Equal(t, a.ID(), chain.Nodes[0].ID())
	assert.Equal(t, b.ID(), chain.Nodes[1].ID())
	assert.Equal(t, c.ID(), chain.Nodes[2].ID())

	snapshot := k.Snapshot()
	assert.Equal(t, 4, snapshot.NodeCount)
	assert.Equal(t, 2, snapshot.EdgeCount)
}

func TestDrainEvents(t *testing.T) {
	k := newKernel(t)
	p := commit(t, k, entities.KindPremise, "p")
	commit(t, k, entities.KindWarrant, "w", p.ID())

	first := k.DrainEvents()
	assert.Len(t, first, 3) // two commits, one link
	assert.Empty(t, k.DrainEvents())
}
