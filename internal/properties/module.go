// Package properties provides the property leads bounded context: normalized
// records, persistence, ranking, and score previews.
package properties

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "dealflow_backend/internal/http"
	"dealflow_backend/internal/properties/handler"
	"dealflow_backend/internal/properties/repository"
	"dealflow_backend/internal/properties/service"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/config"
	"dealflow_backend/platform/logger"
	"dealflow_backend/platform/validator"
)

// Module is the properties bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the properties module.
func NewModule(pool *pgxpool.Pool, cfg config.ScoringConfig, val *validator.Validator, log *logger.Logger) *Module {
	weights := scoring.Weights{
		Distress: cfg.GetDistressWeight(),
		Profile:  cfg.GetProfileWeight(),
	}

	repo := repository.New(pool)
	svc := service.New(repo, weights, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "properties"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts property routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/properties")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)
	group.POST("/score-preview", m.handler.PreviewScore)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
