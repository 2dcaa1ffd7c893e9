package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/domain/core/entities"
	"uavi-backend/domain/core/kernel"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/pkg/common"
	pkgerrors "uavi-backend/pkg/errors"
	"uavi-backend/pkg/utils"
)

// ProposalHandler handles proposal submissions
type ProposalHandler struct {
	service *services.KernelService
	logger  *zap.Logger
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(service *services.KernelService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{service: service, logger: logger}
}

// ProposeRequest represents the request body for proposing a node
type ProposeRequest struct {
	Kind      string         `json:"kind" validate:"required,oneof=premise warrant claim tool_call tool_result constraint rebuttal"`
	Content   string         `json:"content"`
	ParentIDs []string       `json:"parent_ids,omitempty"`
	EdgeKinds []string       `json:"edge_kinds,omitempty" validate:"omitempty,dive,oneof=derived_from supported_by constrained_by attacks refines precedes"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Propose handles POST /proposals
func (h *ProposalHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req ProposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	kind, err := entities.ParseNodeKind(req.Kind)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	parentIDs := make([]valueobjects.NodeID, 0, len(req.ParentIDs))
	for _, raw := range req.ParentIDs {
		id, err := valueobjects.ParseNodeID(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "invalid parent id "+raw+": "+err.Error())
			return
		}
		parentIDs = append(parentIDs, id)
	}

	edgeKinds := make([]entities.EdgeKind, 0, len(req.EdgeKinds))
	for _, raw := range req.EdgeKinds {
		ek, err := entities.ParseEdgeKind(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
			return
		}
		edgeKinds = append(edgeKinds, ek)
	}

	result, err := h.service.Propose(r.Context(), kernel.ProposeRequest{
		Kind:      kind,
		Content:   req.Content,
		ParentIDs: parentIDs,
		EdgeKinds: edgeKinds,
		Metadata:  entities.Metadata(req.Metadata),
	})
	if err != nil {
		h.logger.Error("proposal failed", zap.Error(err))
		common.RespondError(w, pkgerrors.HTTPStatusFor(err), common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	// A rejected proposal is still a successful operation: the rejection
	// is recorded as a permanent error node and returned to the caller.
	status := http.StatusCreated
	if !result.Outcome.Valid {
		status = http.StatusOK
	}
	common.RespondJSON(w, status, result)
}
