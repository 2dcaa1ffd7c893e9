// Package kernel implements the propose→validate→commit lifecycle over the
// reasoning graph, plus its read-only traversal and query operations.
package kernel

import (
	"fmt"
	"sync"

	"uavi-backend/domain/config"
	"uavi-backend/domain/core/aggregates"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/validators"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/domain/events"
	pkgerrors "uavi-backend/pkg/errors"
)

// Kernel orchestrates the reasoning graph. It owns the aggregate, the
// inspector chain, and the identifier sequence, and serializes access with
// a single writer-exclusive, reader-shared lock: Propose and Reset take the
// write side, every read operation observes a consistent point-in-time view
// under the read side.
type Kernel struct {
	mu    sync.RWMutex
	cfg   *config.DomainConfig
	graph *aggregates.Graph
	chain *validators.Chain
	seq   uint64
}

// ProposeRequest carries one candidate node.
type ProposeRequest struct {
	Kind      entities.NodeKind
	Content   string
	ParentIDs []valueobjects.NodeID
	EdgeKinds []entities.EdgeKind
	Metadata  entities.Metadata
}

// ProposeResult pairs the resulting node with the inspection outcome. The
// node is the committed reasoning node on success, the permanent error node
// on rejection; the caller always receives a usable result.
type ProposeResult struct {
	Node    *entities.Node    `json:"node"`
	Outcome validators.Result `json:"outcome"`
}

// New creates a kernel with the default inspector chain.
func New(cfg *config.DomainConfig) *Kernel {
	return NewWithChain(cfg, validators.DefaultChain())
}

// NewWithChain creates a kernel with an explicit inspector chain.
func NewWithChain(cfg *config.DomainConfig, chain *validators.Chain) *Kernel {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Kernel{
		cfg:   cfg,
		graph: aggregates.NewGraph(cfg),
		chain: chain,
	}
}

// Propose runs the inspector chain against the request and commits the
// outcome. A rejected proposal still mutates the graph: the rejection is
// preserved as a permanent error node with no edges, never silently
// dropped. The returned error is reserved for malformed requests; chain
// rejections are reported through the result.
func (k *Kernel) Propose(req ProposeRequest) (*ProposeResult, error) {
	if !req.Kind.IsProposable() {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("kind %q cannot be proposed", req.Kind))
	}
	if len(req.EdgeKinds) > len(req.ParentIDs) {
		return nil, pkgerrors.NewValidationError("more edge kinds than parent ids supplied")
	}
	if len(req.ParentIDs) > k.cfg.MaxParentsPerProposal {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("too many parents: limit is %d", k.cfg.MaxParentsPerProposal))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Worst case the proposal adds one node and one edge per parent.
	// Checking up front keeps the commit all-or-nothing: a full graph
	// rejects the request before any state (or the id sequence) moves.
	if err := k.graph.EnsureCapacity(1, len(req.ParentIDs)); err != nil {
		return nil, err
	}

	k.seq++
	proposal := validators.Proposal{
		NodeID:    valueobjects.NodeIDFromSequence(k.seq),
		Kind:      req.Kind,
		Content:   valueobjects.NewContent(req.Content),
		ParentIDs: req.ParentIDs,
		EdgeKinds: req.EdgeKinds,
		Metadata:  req.Metadata,
	}

	outcome := k.chain.Inspect(proposal, k.graph)
	if !outcome.Valid {
		return k.commitRejection(proposal, outcome)
	}
	return k.commitNode(proposal, outcome)
}

func (k *Kernel) commitNode(p validators.Proposal, outcome validators.Result) (*ProposeResult, error) {
	node, err := entities.NewNode(p.NodeID, p.Kind, p.Content, p.Metadata)
	if err != nil {
		return nil, err
	}
	if err := k.graph.AddNode(node); err != nil {
		return nil, err
	}

	for i, parentID := range p.ParentIDs {
		edge, err := entities.NewEdge(parentID, node.ID(), p.EdgeKindFor(i))
		if err != nil {
			return nil, err
		}
		if err := k.graph.AppendEdge(edge); err != nil {
			return nil, err
		}
	}

	return &ProposeResult{Node: node, Outcome: outcome}, nil
}

func (k *Kernel) commitRejection(p validators.Proposal, outcome validators.Result) (*ProposeResult, error) {
	node, err := entities.NewRejectedNode(p.NodeID, p.Kind, p.Content, outcome.Reason, outcome.Inspector)
	if err != nil {
		return nil, err
	}
	if err := k.graph.AddNode(node); err != nil {
		return nil, err
	}
	k.graph.RecordRejection(node, outcome.Reason, outcome.Inspector)

	return &ProposeResult{Node: node, Outcome: outcome}, nil
}

// GetNode returns the node or a not-found error.
func (k *Kernel) GetNode(id valueobjects.NodeID) (*entities.Node, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.graph.GetNode(id)
}

// Snapshot returns an immutable point-in-time view of the graph.
func (k *Kernel) Snapshot() *aggregates.Snapshot {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.graph.TakeSnapshot()
}

// Reset clears all graph state and restarts the identifier sequence.
func (k *Kernel) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.graph.Reset()
	k.seq = 0
}

// DrainEvents returns the uncommitted domain events and clears them.
func (k *Kernel) DrainEvents() []events.DomainEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	drained := k.graph.GetUncommittedEvents()
	k.graph.MarkEventsAsCommitted()
	return drained
}

// WithView runs fn under the shared read lock against the live aggregate.
// fn must not retain the graph or mutate it.
func (k *Kernel) WithView(fn func(g *aggregates.Graph)) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	fn(k.graph)
}
