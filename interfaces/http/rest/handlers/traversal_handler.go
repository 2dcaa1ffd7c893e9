package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/pkg/common"
)

// TraversalHandler handles context and reasoning chain retrieval
type TraversalHandler struct {
	service *services.KernelService
	logger  *zap.Logger
}

// NewTraversalHandler creates a new traversal handler
func NewTraversalHandler(service *services.KernelService, logger *zap.Logger) *TraversalHandler {
	return &TraversalHandler{service: service, logger: logger}
}

// GetContext handles GET /nodes/{nodeID}/context?max_depth=N
func (h *TraversalHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNodeIDParam(w, r, "nodeID")
	if !ok {
		return
	}

	maxDepth := 0 // kernel substitutes the configured default
	if raw := r.URL.Query().Get("max_depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "max_depth must be a positive integer")
			return
		}
		maxDepth = parsed
	}

	cone, err := h.service.GetContext(r.Context(), id, maxDepth)
	if err != nil {
		respondKernelError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, cone)
}

// GetReasoningChain handles GET /nodes/{nodeID}/chain
func (h *TraversalHandler) GetReasoningChain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNodeIDParam(w, r, "nodeID")
	if !ok {
		return
	}

	chain, err := h.service.GetReasoningChain(r.Context(), id)
	if err != nil {
		respondKernelError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, chain)
}
