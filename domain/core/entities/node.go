package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"uavi-backend/domain/core/valueobjects"
	pkgerrors "uavi-backend/pkg/errors"
)

// Metadata is an open-ended attribute mapping attached to a node. It is
// genuinely heterogeneous: rejection details for error nodes, caller
// annotations (tags, provenance hints) for everything else.
type Metadata map[string]any

// Well-known metadata keys written by the kernel for rejected proposals.
const (
	MetaOriginalKind = "originalType"
	MetaReason       = "reason"
	MetaInspector    = "inspector"
)

// Copy returns a shallow copy, never nil.
func (m Metadata) Copy() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// StringValue returns the value for key if it is a string.
func (m Metadata) StringValue(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Tags returns the "tags" entry as a string slice, if present. Both
// []string and []any payloads are accepted since metadata round-trips
// through JSON at the boundary.
func (m Metadata) Tags() []string {
	switch v := m["tags"].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// Node is one typed unit of reasoning in the graph.
// Nodes are born only through the kernel's propose lifecycle, are immutable
// after commit, and die only on a full graph reset.
type Node struct {
	id        valueobjects.NodeID
	kind      NodeKind
	content   valueobjects.Content
	metadata  Metadata
	createdAt time.Time
	valid     bool
}

// NewNode creates a committed reasoning node. The id must already be
// allocated by the kernel; the kind must be proposable.
func NewNode(id valueobjects.NodeID, kind NodeKind, content valueobjects.Content, metadata Metadata) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node id must be assigned before construction")
	}
	if !kind.IsProposable() {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("kind %q cannot be committed as a reasoning node", kind))
	}

	return &Node{
		id:        id,
		kind:      kind,
		content:   content,
		metadata:  metadata.Copy(),
		createdAt: time.Now(),
		valid:     true,
	}, nil
}

// NewRejectedNode creates the permanent error node recording a rejected
// proposal. The original content and the rejection reason are embedded in
// the content; metadata carries the structured rejection details.
func NewRejectedNode(id valueobjects.NodeID, originalKind NodeKind, content valueobjects.Content, reason, inspector string) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node id must be assigned before construction")
	}

	meta := Metadata{
		MetaOriginalKind: originalKind.String(),
		MetaReason:       reason,
		MetaInspector:    inspector,
	}

	text := fmt.Sprintf("REJECTED [%s]: %s (reason: %s)", originalKind, content.Text(), reason)

	return &Node{
		id:        id,
		kind:      KindError,
		content:   valueobjects.NewContent(text),
		metadata:  meta,
		createdAt: time.Now(),
		valid:     false,
	}, nil
}

// ID returns the node's unique identifier.
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Kind returns the node's semantic kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Content returns the node's content.
func (n *Node) Content() valueobjects.Content {
	return n.content
}

// IsValid reports whether the node is a committed reasoning node. Error
// nodes recording rejections are never valid.
func (n *Node) IsValid() bool {
	return n.valid
}

// CreatedAt returns when the node was committed.
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// Metadata returns a copy of the node's metadata.
func (n *Node) Metadata() Metadata {
	return n.metadata.Copy()
}

// nodeJSON is the wire shape of a node.
type nodeJSON struct {
	ID        valueobjects.NodeID  `json:"id"`
	Kind      NodeKind             `json:"kind"`
	Content   valueobjects.Content `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
	Valid     bool                 `json:"valid"`
	Metadata  Metadata             `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		ID:        n.id,
		Kind:      n.kind,
		Content:   n.content,
		CreatedAt: n.createdAt,
		Valid:     n.valid,
		Metadata:  n.metadata,
	})
}
