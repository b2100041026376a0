// Package propertydata provides the composition root for the metered
// property-data API integration.
package propertydata

import (
	"dealflow_backend/internal/propertydata/cache"
	"dealflow_backend/internal/propertydata/client"
	"dealflow_backend/internal/propertydata/service"
	"dealflow_backend/platform/config"
	"dealflow_backend/platform/logger"
)

// Module wires the property-data client, cache, and service. It is always
// constructed, even without an API key: calls fail with a configuration
// error instead of the process refusing to start, so stored leads stay
// servable.
type Module struct {
	service     *service.Service
	detailCache *cache.DetailCache
}

// Config is the configuration surface the module needs.
type Config interface {
	config.PropertyDataConfig
	config.CacheConfig
}

// NewModule creates and initializes the property-data module.
func NewModule(cfg Config, log *logger.Logger) (*Module, error) {
	detailCache, err := cache.New(cfg.GetRedisURL(), cfg.GetDetailCacheTTL(), log)
	if err != nil {
		return nil, err
	}

	apiClient := client.New(cfg, log)
	if !apiClient.Configured() {
		log.Warn("property data API key not configured; upstream calls will fail until PROPERTY_API_KEY is set")
	}

	return &Module{
		service:     service.New(apiClient, detailCache, log),
		detailCache: detailCache,
	}, nil
}

// Service returns the property-data service.
func (m *Module) Service() *service.Service {
	return m.service
}

// Close releases module resources.
func (m *Module) Close() error {
	return m.detailCache.Close()
}
