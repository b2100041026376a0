package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dealflow_backend/internal/discovery/transport"
	"dealflow_backend/platform/httpkit"
	"dealflow_backend/platform/validator"
)

// Enqueuer hands a discovery run to the background worker.
type Enqueuer interface {
	EnqueueDiscoveryRun(ctx context.Context, req transport.RunRequest) error
}

// Handler handles HTTP requests for discovery runs.
type Handler struct {
	enqueuer Enqueuer
	val      *validator.Validator
}

// New creates a new discovery handler.
func New(enqueuer Enqueuer, val *validator.Validator) *Handler {
	return &Handler{enqueuer: enqueuer, val: val}
}

// TriggerRun enqueues a discovery run and returns its run ID. The run itself
// executes on the worker; this endpoint never spends upstream credits.
// POST /api/v1/discovery/runs
func (h *Handler) TriggerRun(c *gin.Context) {
	var req transport.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Messages(err))
		return
	}

	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	if err := h.enqueuer.EnqueueDiscoveryRun(c.Request.Context(), req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Accepted(c, transport.TriggerRunResponse{
		RunID:  req.RunID,
		Status: "queued",
	})
}
