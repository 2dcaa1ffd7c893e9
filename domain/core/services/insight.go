// Package services holds domain services that read the committed graph
// without taking part in the propose lifecycle.
package services

import (
	"uavi-backend/domain/config"
	"uavi-backend/domain/core/aggregates"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/kernel"
	"uavi-backend/domain/core/valueobjects"
	pkgerrors "uavi-backend/pkg/errors"
)

// InsightMagnitude classifies how strong a detected compression tunnel is.
type InsightMagnitude string

const (
	MagnitudeMinor         InsightMagnitude = "minor"
	MagnitudeMajor         InsightMagnitude = "major"
	MagnitudeEpiphany      InsightMagnitude = "epiphany"
	MagnitudeParadigmShift InsightMagnitude = "paradigm_shift"
)

// InsightEvent describes a candidate direct link between two valid nodes
// that would shortcut a much longer path through the committed graph.
type InsightEvent struct {
	SourceID         valueobjects.NodeID `json:"source_id"`
	TargetID         valueobjects.NodeID `json:"target_id"`
	SurfaceDistance  float64             `json:"surface_distance"`
	TunnelDistance   float64             `json:"tunnel_distance"`
	CompressionRatio float64             `json:"compression_ratio"`
	Magnitude        InsightMagnitude    `json:"magnitude"`
}

// InsightDetector measures connection capacity between committed nodes:
// the ratio between the distance through existing reasoning steps and the
// single hop a direct link would take.
type InsightDetector struct {
	cfg    *config.DomainConfig
	kernel *kernel.Kernel
}

// NewInsightDetector creates a detector over the kernel's graph.
func NewInsightDetector(cfg *config.DomainConfig, k *kernel.Kernel) *InsightDetector {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &InsightDetector{cfg: cfg, kernel: k}
}

// Detect computes the insight event for a prospective direct link between
// two valid nodes. Nodes that are already adjacent (or identical) carry no
// insight and yield nil. Unknown ids and error nodes are not-found.
func (d *InsightDetector) Detect(sourceID, targetID valueobjects.NodeID) (*InsightEvent, error) {
	var (
		event   *InsightEvent
		lookupe error
	)

	d.kernel.WithView(func(g *aggregates.Graph) {
		source, err := validNode(g, sourceID)
		if err != nil {
			lookupe = err
			return
		}
		target, err := validNode(g, targetID)
		if err != nil {
			lookupe = err
			return
		}

		surface := d.surfaceDistance(g, source, target)
		if surface <= 1 {
			return // already neighbors, no insight
		}

		const tunnel = 1.0
		ratio := surface / tunnel

		event = &InsightEvent{
			SourceID:         sourceID,
			TargetID:         targetID,
			SurfaceDistance:  surface,
			TunnelDistance:   tunnel,
			CompressionRatio: ratio,
			Magnitude:        d.classify(ratio),
		}
	})

	if lookupe != nil {
		return nil, lookupe
	}
	return event, nil
}

// surfaceDistance is the length of the shortest path between two nodes
// through existing edges, direction ignored. Disconnected nodes fall back
// to a metadata-tag overlap heuristic: shared tags pull the concepts
// close, disjoint tags leave them maximally far apart.
func (d *InsightDetector) surfaceDistance(g *aggregates.Graph, source, target *entities.Node) float64 {
	if dist, ok := graphDistance(g, source.ID(), target.ID()); ok {
		return float64(dist)
	}

	shared := 0
	targetTags := make(map[string]bool)
	for _, tag := range target.Metadata().Tags() {
		targetTags[tag] = true
	}
	for _, tag := range source.Metadata().Tags() {
		if targetTags[tag] {
			shared++
		}
	}

	if shared > 0 {
		return 1.0 / float64(shared)
	}
	return d.cfg.DisparateSurfaceCost
}

func (d *InsightDetector) classify(ratio float64) InsightMagnitude {
	switch {
	case ratio > d.cfg.ParadigmShiftRatio:
		return MagnitudeParadigmShift
	case ratio > d.cfg.EpiphanyRatio:
		return MagnitudeEpiphany
	case ratio > d.cfg.MajorInsightRatio:
		return MagnitudeMajor
	default:
		return MagnitudeMinor
	}
}

// graphDistance runs BFS over the valid subgraph treating edges as
// undirected, returning the hop count between two nodes.
func graphDistance(g *aggregates.Graph, from, to valueobjects.NodeID) (int, bool) {
	if from.Equals(to) {
		return 0, true
	}

	type hop struct {
		id    valueobjects.NodeID
		depth int
	}

	visited := map[valueobjects.NodeID]bool{from: true}
	queue := []hop{{id: from, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors := []*entities.Edge{}
		neighbors = append(neighbors, g.ChildEdges(current.id)...)
		neighbors = append(neighbors, g.ParentEdges(current.id)...)

		for _, edge := range neighbors {
			next := edge.TargetID
			if next.Equals(current.id) {
				next = edge.SourceID
			}

			if node, exists := g.Node(next); !exists || !node.IsValid() {
				continue
			}
			if next.Equals(to) {
				return current.depth + 1, true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, hop{id: next, depth: current.depth + 1})
			}
		}
	}

	return 0, false
}

func validNode(g *aggregates.Graph, id valueobjects.NodeID) (*entities.Node, error) {
	node, err := g.GetNode(id)
	if err != nil {
		return nil, err
	}
	if !node.IsValid() {
		return nil, pkgerrors.NewNotFoundError("valid node " + id.String())
	}
	return node, nil
}
