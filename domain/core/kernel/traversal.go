package kernel

import (
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
)

// LightCone is the bounded set of valid ancestors reachable backward from
// a node, together with the edges traversed to reach them.
type LightCone struct {
	RootID   valueobjects.NodeID `json:"root_id"`
	MaxDepth int                 `json:"max_depth"`
	Nodes    []*entities.Node    `json:"nodes"`
	Edges    []*entities.Edge    `json:"edges"`
}

// ReasoningChain is the single provenance backbone from a root to a node,
// built by following first-recorded parents.
type ReasoningChain struct {
	ClaimID valueobjects.NodeID `json:"claim_id"`
	Nodes   []*entities.Node    `json:"nodes"` // root-to-claim order
	Edges   []*entities.Edge    `json:"edges"` // connecting consecutive nodes
	Length  int                 `json:"length"`
}

// GetContext performs a depth-bounded traversal backward along the
// child→parent index from id, collecting every valid node reached within
// maxDepth hops and every edge traversed to reach it. Parents are visited
// in edge-log order, so the result is deterministic. maxDepth <= 0 selects
// the configured default.
func (k *Kernel) GetContext(id valueobjects.NodeID, maxDepth int) (*LightCone, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	start, err := k.graph.GetNode(id)
	if err != nil {
		return nil, err
	}

	if maxDepth <= 0 {
		maxDepth = k.cfg.DefaultTraversalDepth
	}
	if maxDepth > k.cfg.MaxTraversalDepth {
		maxDepth = k.cfg.MaxTraversalDepth
	}

	cone := &LightCone{
		RootID:   id,
		MaxDepth: maxDepth,
		Nodes:    []*entities.Node{},
		Edges:    []*entities.Edge{},
	}
	if start.IsValid() {
		cone.Nodes = append(cone.Nodes, start)
	}

	type hop struct {
		id    valueobjects.NodeID
		depth int
	}

	// The visited set guarantees termination even if the acyclicity
	// invariant has been violated.
	visited := map[valueobjects.NodeID]bool{id: true}
	queue := []hop{{id: id, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		for _, edge := range k.graph.ParentEdges(current.id) {
			parent, exists := k.graph.Node(edge.SourceID)
			if !exists || !parent.IsValid() {
				continue
			}

			cone.Edges = append(cone.Edges, edge)

			if !visited[edge.SourceID] {
				visited[edge.SourceID] = true
				cone.Nodes = append(cone.Nodes, parent)
				queue = append(queue, hop{id: edge.SourceID, depth: current.depth + 1})
			}
		}
	}

	return cone, nil
}

// GetReasoningChain builds the linear provenance path for a node by
// repeatedly following its first-recorded parent until a parentless node
// is reached. The loop is iterative with a visited guard so a malformed
// graph cannot hang it. The path is returned in root-to-claim order.
func (k *Kernel) GetReasoningChain(claimID valueobjects.NodeID) (*ReasoningChain, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	node, err := k.graph.GetNode(claimID)
	if err != nil {
		return nil, err
	}

	var (
		nodes   = []*entities.Node{node}
		edges   []*entities.Edge
		visited = map[valueobjects.NodeID]bool{claimID: true}
		current = claimID
	)

	for {
		parents := k.graph.ParentEdges(current)
		if len(parents) == 0 {
			break
		}

		first := parents[0]
		if visited[first.SourceID] {
			break
		}
		parent, exists := k.graph.Node(first.SourceID)
		if !exists {
			break
		}

		visited[first.SourceID] = true
		nodes = append(nodes, parent)
		edges = append(edges, first)
		current = first.SourceID
	}

	// Collected claim-to-root; the contract is root-to-claim.
	reverseNodes(nodes)
	reverseEdges(edges)

	return &ReasoningChain{
		ClaimID: claimID,
		Nodes:   nodes,
		Edges:   edges,
		Length:  len(nodes),
	}, nil
}

func reverseNodes(s []*entities.Node) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseEdges(s []*entities.Edge) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
