package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/domain/core/valueobjects"
	"uavi-backend/domain/versioning"
	"uavi-backend/pkg/common"
	pkgerrors "uavi-backend/pkg/errors"
)

// GraphHandler handles node lookups and whole-graph operations
type GraphHandler struct {
	service *services.KernelService
	logger  *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(service *services.KernelService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{service: service, logger: logger}
}

// GetNode handles GET /nodes/{nodeID}
func (h *GraphHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNodeIDParam(w, r, "nodeID")
	if !ok {
		return
	}

	node, err := h.service.GetNode(r.Context(), id)
	if err != nil {
		respondKernelError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, node)
}

// GetSnapshot handles GET /graph
func (h *GraphHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.service.Snapshot(r.Context()))
}

// GetVersions handles GET /graph/versions
func (h *GraphHandler) GetVersions(w http.ResponseWriter, r *http.Request) {
	versions := h.service.SnapshotVersions(r.Context())

	// Diff between the two most recent versions, null until a second
	// version exists.
	var latestDiff *versioning.VersionDiff
	if len(versions) >= 2 {
		diff, err := versioning.Compare(versions[len(versions)-2], versions[len(versions)-1])
		if err != nil {
			h.logger.Warn("failed to diff snapshot versions", zap.Error(err))
		} else {
			latestDiff = diff
		}
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"versions":    versions,
		"count":       len(versions),
		"latest_diff": latestDiff,
	})
}

// Reset handles POST /graph/reset
func (h *GraphHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// parseNodeIDParam extracts and parses a node id route parameter, writing
// the 400 response itself on failure.
func parseNodeIDParam(w http.ResponseWriter, r *http.Request, param string) (valueobjects.NodeID, bool) {
	raw := chi.URLParam(r, param)
	id, err := valueobjects.ParseNodeID(raw)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "invalid node id "+raw+": "+err.Error())
		return valueobjects.NodeID{}, false
	}
	return id, true
}

// respondKernelError translates kernel errors into protocol errors. The
// kernel's not-found signal becomes a 404; anything else is unexpected.
func respondKernelError(w http.ResponseWriter, err error) {
	if pkgerrors.IsNotFound(err) {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, err.Error())
		return
	}
	common.RespondError(w, pkgerrors.HTTPStatusFor(err), common.StandardErrorCodes.InternalError, err.Error())
}
