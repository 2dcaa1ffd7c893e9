package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/pkg/common"
)

// InsightHandler handles connection capacity queries
type InsightHandler struct {
	service *services.KernelService
	logger  *zap.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(service *services.KernelService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{service: service, logger: logger}
}

// Detect handles GET /insights?source=n1&target=n9
func (h *InsightHandler) Detect(w http.ResponseWriter, r *http.Request) {
	sourceID, err := valueobjects.ParseNodeID(r.URL.Query().Get("source"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "source: "+err.Error())
		return
	}
	targetID, err := valueobjects.ParseNodeID(r.URL.Query().Get("target"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "target: "+err.Error())
		return
	}

	event, err := h.service.DetectInsight(r.Context(), sourceID, targetID)
	if err != nil {
		respondKernelError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"insight": event, // null when the nodes are already neighbors
	})
}
