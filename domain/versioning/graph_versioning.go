// Package versioning fingerprints graph snapshots so that successive
// exports of the reasoning graph can be compared and audited.
package versioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"uavi-backend/domain/core/aggregates"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/valueobjects"
)

// SnapshotVersion records one fingerprinted snapshot of the graph
type SnapshotVersion struct {
	Version   int       `json:"version"`
	Checksum  string    `json:"checksum"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	CreatedAt time.Time `json:"created_at"`
}

// VersionDiff describes how the graph changed between two versions
type VersionDiff struct {
	FromVersion int           `json:"from_version"`
	ToVersion   int           `json:"to_version"`
	NodesAdded  int           `json:"nodes_added"`
	EdgesAdded  int           `json:"edges_added"`
	Unchanged   bool          `json:"unchanged"`
	TimeDiff    time.Duration `json:"time_diff"`
}

// History keeps a bounded, in-memory log of snapshot versions.
// The graph is append-only between resets, so counts only grow
// within a history; Clear starts a fresh lineage after a reset.
type History struct {
	mu          sync.Mutex
	maxVersions int
	versions    []*SnapshotVersion
	nextVersion int
}

// NewHistory creates a history retaining at most maxVersions entries
func NewHistory(maxVersions int) *History {
	if maxVersions <= 0 {
		maxVersions = 10
	}
	return &History{
		maxVersions: maxVersions,
		nextVersion: 1,
	}
}

// Record fingerprints the snapshot and appends it to the history.
// Recording an unchanged graph returns the existing latest version
// rather than minting a duplicate.
func (h *History) Record(snapshot aggregates.Snapshot) (*SnapshotVersion, error) {
	checksum, err := checksumSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if last := h.latestLocked(); last != nil && last.Checksum == checksum {
		return last, nil
	}

	version := &SnapshotVersion{
		Version:   h.nextVersion,
		Checksum:  checksum,
		NodeCount: snapshot.NodeCount,
		EdgeCount: snapshot.EdgeCount,
		CreatedAt: time.Now(),
	}
	h.nextVersion++

	h.versions = append(h.versions, version)
	if len(h.versions) > h.maxVersions {
		h.versions = h.versions[len(h.versions)-h.maxVersions:]
	}

	return version, nil
}

// List returns the retained versions, oldest first
func (h *History) List() []*SnapshotVersion {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*SnapshotVersion, len(h.versions))
	copy(out, h.versions)
	return out
}

// Latest returns the most recent version, or nil if none recorded
func (h *History) Latest() *SnapshotVersion {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latestLocked()
}

func (h *History) latestLocked() *SnapshotVersion {
	if len(h.versions) == 0 {
		return nil
	}
	return h.versions[len(h.versions)-1]
}

// Clear discards the history and restarts version numbering
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.versions = nil
	h.nextVersion = 1
}

// Compare computes the difference between two recorded versions
func Compare(from, to *SnapshotVersion) (*VersionDiff, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("versions cannot be nil")
	}

	return &VersionDiff{
		FromVersion: from.Version,
		ToVersion:   to.Version,
		NodesAdded:  to.NodeCount - from.NodeCount,
		EdgesAdded:  to.EdgeCount - from.EdgeCount,
		Unchanged:   from.Checksum == to.Checksum,
		TimeDiff:    to.CreatedAt.Sub(from.CreatedAt),
	}, nil
}

// checksumSnapshot hashes the logical graph content only: node ids,
// kinds, contents, and validity, plus edge endpoints and kinds.
// Timestamps and the random edge identifiers are left out so two runs
// committing the same state produce the same checksum.
func checksumSnapshot(snapshot aggregates.Snapshot) (string, error) {
	type nodeRow struct {
		ID      valueobjects.NodeID  `json:"id"`
		Kind    entities.NodeKind    `json:"kind"`
		Content valueobjects.Content `json:"content"`
		Valid   bool                 `json:"valid"`
	}
	type edgeRow struct {
		SourceID valueobjects.NodeID `json:"source_id"`
		TargetID valueobjects.NodeID `json:"target_id"`
		Kind     entities.EdgeKind   `json:"kind"`
	}

	data := struct {
		Nodes []nodeRow `json:"nodes"`
		Edges []edgeRow `json:"edges"`
	}{
		Nodes: make([]nodeRow, 0, len(snapshot.Nodes)),
		Edges: make([]edgeRow, 0, len(snapshot.Edges)),
	}

	for _, node := range snapshot.Nodes {
		data.Nodes = append(data.Nodes, nodeRow{
			ID:      node.ID(),
			Kind:    node.Kind(),
			Content: node.Content(),
			Valid:   node.IsValid(),
		})
	}
	for _, edge := range snapshot.Edges {
		data.Edges = append(data.Edges, edgeRow{
			SourceID: edge.SourceID,
			TargetID: edge.TargetID,
			Kind:     edge.Kind,
		})
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}
