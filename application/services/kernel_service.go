// Package services wires the graph kernel to the boundary layer, adding
// logging, metrics, and domain event draining around each operation.
package services

import (
	"context"

	"go.uber.org/zap"

	"uavi-backend/domain/core/aggregates"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/kernel"
	domainservices "uavi-backend/domain/core/services"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/domain/versioning"
	"uavi-backend/pkg/observability"
)

// KernelService is the application facade over the kernel. The kernel
// itself stays transport- and logging-free; everything operational lives
// here.
type KernelService struct {
	kernel  *kernel.Kernel
	insight *domainservices.InsightDetector
	history *versioning.History
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewKernelService creates the service.
func NewKernelService(
	k *kernel.Kernel,
	insight *domainservices.InsightDetector,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *KernelService {
	return &KernelService{
		kernel:  k,
		insight: insight,
		history: versioning.NewHistory(10),
		logger:  logger,
		metrics: metrics,
	}
}

// Propose submits a candidate node to the kernel.
func (s *KernelService) Propose(ctx context.Context, req kernel.ProposeRequest) (*kernel.ProposeResult, error) {
	result, err := s.kernel.Propose(req)
	if err != nil {
		s.logger.Warn("malformed proposal",
			zap.String("kind", req.Kind.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if result.Outcome.Valid {
		s.logger.Info("proposal committed",
			zap.String("nodeID", result.Node.ID().String()),
			zap.String("kind", req.Kind.String()),
			zap.Int("parents", len(req.ParentIDs)),
		)
	} else {
		s.logger.Info("proposal rejected",
			zap.String("nodeID", result.Node.ID().String()),
			zap.String("kind", req.Kind.String()),
			zap.String("inspector", result.Outcome.Inspector),
			zap.String("reason", result.Outcome.Reason),
		)
	}

	s.metrics.ObserveProposal(req.Kind.String(), result.Outcome.Valid)
	s.publishEvents()

	return result, nil
}

// GetNode returns a node by id.
func (s *KernelService) GetNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error) {
	return s.kernel.GetNode(id)
}

// GetContext returns the causal light cone of a node.
func (s *KernelService) GetContext(ctx context.Context, id valueobjects.NodeID, maxDepth int) (*kernel.LightCone, error) {
	return s.kernel.GetContext(id, maxDepth)
}

// GetReasoningChain returns the provenance backbone of a node.
func (s *KernelService) GetReasoningChain(ctx context.Context, claimID valueobjects.NodeID) (*kernel.ReasoningChain, error) {
	return s.kernel.GetReasoningChain(claimID)
}

// Query returns valid nodes matching a keyword, optionally by kind.
func (s *KernelService) Query(ctx context.Context, text string, kindFilter *entities.NodeKind) []*entities.Node {
	return s.kernel.Query(text, kindFilter)
}

// Snapshot returns the immutable graph view and records it in the
// version history.
func (s *KernelService) Snapshot(ctx context.Context) *aggregates.Snapshot {
	snapshot := s.kernel.Snapshot()

	if version, err := s.history.Record(*snapshot); err != nil {
		s.logger.Warn("failed to record snapshot version", zap.Error(err))
	} else {
		s.logger.Debug("snapshot versioned",
			zap.Int("version", version.Version),
			zap.String("checksum", version.Checksum),
		)
	}

	return snapshot
}

// SnapshotVersions lists the retained snapshot versions, oldest first.
func (s *KernelService) SnapshotVersions(ctx context.Context) []*versioning.SnapshotVersion {
	return s.history.List()
}

// DetectInsight measures connection capacity between two committed nodes.
func (s *KernelService) DetectInsight(ctx context.Context, sourceID, targetID valueobjects.NodeID) (*domainservices.InsightEvent, error) {
	return s.insight.Detect(sourceID, targetID)
}

// Reset clears all graph state.
func (s *KernelService) Reset(ctx context.Context) {
	s.kernel.Reset()
	s.history.Clear()
	s.logger.Info("graph reset")
	s.publishEvents()
}

// publishEvents drains uncommitted domain events. Durable persistence is
// out of scope, so the sink is the structured log plus the size gauges.
func (s *KernelService) publishEvents() {
	for _, event := range s.kernel.DrainEvents() {
		s.logger.Debug("domain event",
			zap.String("type", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Time("at", event.GetTimestamp()),
		)
	}

	snapshot := s.kernel.Snapshot()
	s.metrics.SetGraphSize(snapshot.NodeCount, snapshot.EdgeCount)
}
