package events

import (
	"time"

	"uavi-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// Event type identifiers
const (
	EventTypeNodeCommitted    = "node.committed"
	EventTypeProposalRejected = "proposal.rejected"
	EventTypeNodesLinked      = "nodes.linked"
	EventTypeGraphReset       = "graph.reset"
)

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// NodeCommitted is raised when a proposal passes the inspector chain and
// its node enters the graph.
type NodeCommitted struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
	Kind   string              `json:"kind"`
}

// NewNodeCommitted creates a NodeCommitted event
func NewNodeCommitted(nodeID valueobjects.NodeID, kind string, timestamp time.Time) NodeCommitted {
	return NodeCommitted{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   EventTypeNodeCommitted,
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID: nodeID,
		Kind:   kind,
	}
}

// ProposalRejected is raised when the inspector chain rejects a proposal
// and a permanent error node records the rejection.
type ProposalRejected struct {
	BaseEvent
	NodeID       valueobjects.NodeID `json:"node_id"`
	OriginalKind string              `json:"original_kind"`
	Reason       string              `json:"reason"`
	Inspector    string              `json:"inspector"`
}

// NewProposalRejected creates a ProposalRejected event
func NewProposalRejected(nodeID valueobjects.NodeID, originalKind, reason, inspector string, timestamp time.Time) ProposalRejected {
	return ProposalRejected{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   EventTypeProposalRejected,
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:       nodeID,
		OriginalKind: originalKind,
		Reason:       reason,
		Inspector:    inspector,
	}
}

// NodesLinked is raised when an edge from a parent into a newly committed
// node is appended to the edge log.
type NodesLinked struct {
	BaseEvent
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
	EdgeKind string              `json:"edge_kind"`
}

// NewNodesLinked creates a NodesLinked event
func NewNodesLinked(sourceID, targetID valueobjects.NodeID, edgeKind string, timestamp time.Time) NodesLinked {
	return NodesLinked{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   EventTypeNodesLinked,
			Timestamp:   timestamp,
			Version:     1,
		},
		SourceID: sourceID,
		TargetID: targetID,
		EdgeKind: edgeKind,
	}
}

// GraphReset is raised when the full graph state is cleared.
type GraphReset struct {
	BaseEvent
	NodesCleared int `json:"nodes_cleared"`
	EdgesCleared int `json:"edges_cleared"`
}

// NewGraphReset creates a GraphReset event
func NewGraphReset(nodesCleared, edgesCleared int, timestamp time.Time) GraphReset {
	return GraphReset{
		BaseEvent: BaseEvent{
			AggregateID: "graph",
			EventType:   EventTypeGraphReset,
			Timestamp:   timestamp,
			Version:     1,
		},
		NodesCleared: nodesCleared,
		EdgesCleared: edgesCleared,
	}
}
