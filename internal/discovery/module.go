// Package discovery provides the discovery bounded context: running
// acquisition passes against the metered upstream and queueing them from the
// HTTP API.
package discovery

import (
	"dealflow_backend/internal/discovery/handler"
	apphttp "dealflow_backend/internal/http"
	"dealflow_backend/platform/events"
	"dealflow_backend/platform/logger"
	"dealflow_backend/platform/validator"
)

// Module is the discovery bounded context module.
type Module struct {
	service *Service
	handler *handler.Handler
}

// NewModule creates and initializes the discovery module. The enqueuer is
// the scheduler client; runs triggered over HTTP execute on the worker.
func NewModule(upstreamAPI PropertyData, store PropertyStore, profiles ProfileScorer, enqueuer handler.Enqueuer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := New(upstreamAPI, store, profiles, bus, log)

	return &Module{
		service: svc,
		handler: handler.New(enqueuer, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the discovery service, used by the worker to execute
// queued runs.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts discovery routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/discovery/runs", m.handler.TriggerRun)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
