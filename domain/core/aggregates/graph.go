package aggregates

import (
	"time"

	"uavi-backend/domain/config"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/domain/events"
	pkgerrors "uavi-backend/pkg/errors"
)

// Graph is the aggregate root for the reasoning graph. It owns the node
// repository, the append-only edge log, and the two derived adjacency
// indices, and keeps all three consistent on every mutation.
//
// The aggregate itself is not safe for concurrent use; the kernel guards
// it with a single writer-exclusive, reader-shared lock.
type Graph struct {
	cfg *config.DomainConfig

	nodes map[valueobjects.NodeID]*entities.Node
	order []valueobjects.NodeID // repository iteration order (insertion order)

	edgeLog  []*entities.Edge                            // append-only, ordered
	incoming map[valueobjects.NodeID][]*entities.Edge    // child -> parent edges, log order
	outgoing map[valueobjects.NodeID][]*entities.Edge    // parent -> child edges, log order

	createdAt time.Time
	updatedAt time.Time

	events []events.DomainEvent
}

// Snapshot is an immutable point-in-time view of the graph for external
// consumption.
type Snapshot struct {
	Nodes          []*entities.Node `json:"nodes"`
	Edges          []*entities.Edge `json:"edges"`
	NodeCount      int              `json:"node_count"`
	EdgeCount      int              `json:"edge_count"`
	CreatedAt      time.Time        `json:"created_at"`
	LastModifiedAt time.Time        `json:"last_modified_at"`
}

// NewGraph creates an empty graph aggregate
func NewGraph(cfg *config.DomainConfig) *Graph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	now := time.Now()
	return &Graph{
		cfg:       cfg,
		nodes:     make(map[valueobjects.NodeID]*entities.Node),
		edgeLog:   []*entities.Edge{},
		incoming:  make(map[valueobjects.NodeID][]*entities.Edge),
		outgoing:  make(map[valueobjects.NodeID][]*entities.Edge),
		createdAt: now,
		updatedAt: now,
		events:    []events.DomainEvent{},
	}
}

// EnsureCapacity reports whether the graph can absorb the given number of
// additional nodes and edges without breaching its configured limits. The
// kernel checks this before mutating so a commit never lands partially.
func (g *Graph) EnsureCapacity(nodes, edges int) error {
	if len(g.nodes)+nodes > g.cfg.MaxNodesPerGraph {
		return pkgerrors.NewConflictError("maximum nodes reached")
	}
	if len(g.edgeLog)+edges > g.cfg.MaxEdgesPerGraph {
		return pkgerrors.NewConflictError("maximum edges reached")
	}
	return nil
}

// AddNode inserts a node into the repository. Inserting an id twice is a
// conflict; the kernel's sequence makes that unreachable in practice.
func (g *Graph) AddNode(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}

	nodeID := node.ID()
	if _, exists := g.nodes[nodeID]; exists {
		return pkgerrors.NewConflictError("node " + nodeID.String() + " already exists in graph")
	}

	if len(g.nodes) >= g.cfg.MaxNodesPerGraph {
		return pkgerrors.NewConflictError("maximum nodes reached")
	}

	g.nodes[nodeID] = node
	g.order = append(g.order, nodeID)
	g.updatedAt = time.Now()

	if node.IsValid() {
		g.addEvent(events.NewNodeCommitted(nodeID, node.Kind().String(), g.updatedAt))
	}

	return nil
}

// RecordRejection raises the rejection event for an error node that was
// just inserted via AddNode.
func (g *Graph) RecordRejection(node *entities.Node, reason, inspector string) {
	meta := node.Metadata()
	originalKind, _ := meta.StringValue(entities.MetaOriginalKind)
	g.addEvent(events.NewProposalRejected(node.ID(), originalKind, reason, inspector, time.Now()))
}

// AppendEdge appends an edge to the log and updates both adjacency indices
// atomically. Both endpoints must already exist in the repository.
func (g *Graph) AppendEdge(edge *entities.Edge) error {
	if edge == nil {
		return pkgerrors.NewValidationError("edge cannot be nil")
	}

	if _, exists := g.nodes[edge.SourceID]; !exists {
		return pkgerrors.NewValidationError("edge references non-existent source node " + edge.SourceID.String())
	}
	if _, exists := g.nodes[edge.TargetID]; !exists {
		return pkgerrors.NewValidationError("edge references non-existent target node " + edge.TargetID.String())
	}

	if len(g.edgeLog) >= g.cfg.MaxEdgesPerGraph {
		return pkgerrors.NewConflictError("maximum edges reached")
	}

	g.edgeLog = append(g.edgeLog, edge)
	g.outgoing[edge.SourceID] = append(g.outgoing[edge.SourceID], edge)
	g.incoming[edge.TargetID] = append(g.incoming[edge.TargetID], edge)
	g.updatedAt = time.Now()

	g.addEvent(events.NewNodesLinked(edge.SourceID, edge.TargetID, edge.Kind.String(), g.updatedAt))

	return nil
}

// GetNode retrieves a node by ID
func (g *Graph) GetNode(nodeID valueobjects.NodeID) (*entities.Node, error) {
	node, exists := g.nodes[nodeID]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("node " + nodeID.String())
	}
	return node, nil
}

// HasNode checks if a node exists in the graph without error
func (g *Graph) HasNode(nodeID valueobjects.NodeID) bool {
	_, exists := g.nodes[nodeID]
	return exists
}

// Node returns the node and whether it exists.
func (g *Graph) Node(nodeID valueobjects.NodeID) (*entities.Node, bool) {
	node, exists := g.nodes[nodeID]
	return node, exists
}

// GetNodes returns all nodes in repository insertion order.
func (g *Graph) GetNodes() []*entities.Node {
	nodes := make([]*entities.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// GetEdges returns the edge log in append order.
func (g *Graph) GetEdges() []*entities.Edge {
	edges := make([]*entities.Edge, len(g.edgeLog))
	copy(edges, g.edgeLog)
	return edges
}

// ParentEdges returns the incoming edges of a node in edge-log order. The
// first entry is the node's first-recorded parent.
func (g *Graph) ParentEdges(nodeID valueobjects.NodeID) []*entities.Edge {
	edges := make([]*entities.Edge, len(g.incoming[nodeID]))
	copy(edges, g.incoming[nodeID])
	return edges
}

// ChildEdges returns the outgoing edges of a node in edge-log order.
func (g *Graph) ChildEdges(nodeID valueobjects.NodeID) []*entities.Edge {
	edges := make([]*entities.Edge, len(g.outgoing[nodeID]))
	copy(edges, g.outgoing[nodeID])
	return edges
}

// NodeCount returns the number of nodes, error nodes included.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the log.
func (g *Graph) EdgeCount() int {
	return len(g.edgeLog)
}

// CreatedAt returns when the graph was created
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the graph was last modified
func (g *Graph) UpdatedAt() time.Time {
	return g.updatedAt
}

// TakeSnapshot returns an immutable view of the current graph state.
func (g *Graph) TakeSnapshot() *Snapshot {
	return &Snapshot{
		Nodes:          g.GetNodes(),
		Edges:          g.GetEdges(),
		NodeCount:      len(g.nodes),
		EdgeCount:      len(g.edgeLog),
		CreatedAt:      g.createdAt,
		LastModifiedAt: g.updatedAt,
	}
}

// Reset clears the repository, the edge log, and both adjacency indices
// atomically.
func (g *Graph) Reset() {
	nodesCleared := len(g.nodes)
	edgesCleared := len(g.edgeLog)

	g.nodes = make(map[valueobjects.NodeID]*entities.Node)
	g.order = nil
	g.edgeLog = []*entities.Edge{}
	g.incoming = make(map[valueobjects.NodeID][]*entities.Edge)
	g.outgoing = make(map[valueobjects.NodeID][]*entities.Edge)
	g.updatedAt = time.Now()

	g.addEvent(events.NewGraphReset(nodesCleared, edgesCleared, g.updatedAt))
}

// Validate ensures graph invariants: no dangling edge endpoints, adjacency
// indices consistent with the log, and the valid subgraph acyclic.
func (g *Graph) Validate() error {
	for _, edge := range g.edgeLog {
		if _, exists := g.nodes[edge.SourceID]; !exists {
			return pkgerrors.NewInternalError("edge references non-existent source node")
		}
		if _, exists := g.nodes[edge.TargetID]; !exists {
			return pkgerrors.NewInternalError("edge references non-existent target node")
		}
	}

	indexed := 0
	for _, edges := range g.incoming {
		indexed += len(edges)
	}
	if indexed != len(g.edgeLog) {
		return pkgerrors.NewInternalError("adjacency index out of sync with edge log")
	}

	if g.hasCycle() {
		return pkgerrors.NewInternalError("valid subgraph contains a cycle")
	}

	return nil
}

// hasCycle runs an iterative three-color DFS over the valid subgraph.
func (g *Graph) hasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[valueobjects.NodeID]int, len(g.nodes))

	for _, rootID := range g.order {
		if color[rootID] != white {
			continue
		}
		if node := g.nodes[rootID]; !node.IsValid() {
			continue
		}

		type frame struct {
			id   valueobjects.NodeID
			next int
		}
		stack := []frame{{id: rootID}}
		color[rootID] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.outgoing[top.id]

			if top.next >= len(children) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			child := children[top.next].TargetID
			top.next++

			if node := g.nodes[child]; node != nil && !node.IsValid() {
				continue
			}
			switch color[child] {
			case gray:
				return true
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			}
		}
	}

	return false
}

// GetUncommittedEvents returns all uncommitted domain events
func (g *Graph) GetUncommittedEvents() []events.DomainEvent {
	allEvents := make([]events.DomainEvent, len(g.events))
	copy(allEvents, g.events)
	return allEvents
}

// MarkEventsAsCommitted clears the uncommitted events
func (g *Graph) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}
