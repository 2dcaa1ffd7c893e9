package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/domain/core/entities"
	"uavi-backend/pkg/common"
)

// QueryHandler handles keyword search over the graph
type QueryHandler struct {
	service *services.KernelService
	logger  *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service *services.KernelService, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{service: service, logger: logger}
}

// Search handles GET /search?q=text&kind=claim
func (h *QueryHandler) Search(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")

	var kindFilter *entities.NodeKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := entities.ParseNodeKind(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
			return
		}
		kindFilter = &kind
	}

	nodes := h.service.Query(r.Context(), text, kindFilter)

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"nodes": nodes,
		"count": len(nodes),
	})
}
