package entities

import (
	"time"

	"github.com/google/uuid"
	"uavi-backend/domain/core/valueobjects"
	pkgerrors "uavi-backend/pkg/errors"
)

// Edge is a directed causal relationship between two nodes. Edges always
// point into the newly committed node: source is the pre-existing parent,
// target the new child. Edges are never removed individually.
type Edge struct {
	ID        string               `json:"id"`
	SourceID  valueobjects.NodeID  `json:"source_id"`
	TargetID  valueobjects.NodeID  `json:"target_id"`
	Kind      EdgeKind             `json:"kind"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewEdge creates an edge from a parent to a newly committed node.
func NewEdge(sourceID, targetID valueobjects.NodeID, kind EdgeKind) (*Edge, error) {
	if sourceID.IsZero() || targetID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints must be assigned node ids")
	}
	if sourceID.Equals(targetID) {
		return nil, pkgerrors.NewValidationError("cannot connect node to itself")
	}

	return &Edge{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}, nil
}
