// Package service provides typed operations over the property-data API:
// search in its three request shapes, detail lookups, the client-side
// distress filter, and the sequential batch detail fetcher.
package service

import (
	"context"
	"encoding/json"
	"strings"

	"dealflow_backend/internal/propertydata/cache"
	"dealflow_backend/internal/propertydata/client"
	"dealflow_backend/internal/propertydata/transport"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/logger"
)

const (
	searchPath = "/v2/PropertySearch"
	detailPath = "/v2/PropertyDetail"
)

// API is the subset of the upstream client the service depends on.
type API interface {
	Get(ctx context.Context, path string) ([]byte, int, error)
	Post(ctx context.Context, path string, body any) ([]byte, int, error)
}

// Service exposes intention-revealing operations over the generic client.
type Service struct {
	api   API
	cache *cache.DetailCache
	log   *logger.Logger
}

// New creates a property-data service. The detail cache may be nil.
func New(api API, detailCache *cache.DetailCache, log *logger.Logger) *Service {
	return &Service{
		api:   api,
		cache: detailCache,
		log:   log,
	}
}

// Search runs a metered property search and returns the raw results.
func (s *Service) Search(ctx context.Context, criteria transport.SearchCriteria) ([]transport.SearchResult, error) {
	criteria.Count = false
	criteria.IDsOnly = false

	payload, _, err := s.api.Post(ctx, searchPath, criteria)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return []transport.SearchResult{}, nil
	}

	var response struct {
		Data []transport.SearchResult `json:"data"`
	}
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, client.Unknown(err)
	}
	return response.Data, nil
}

// Count runs the free count-only request shape. Callers use it to size a
// search before spending record credits.
func (s *Service) Count(ctx context.Context, criteria transport.SearchCriteria) (int, error) {
	criteria.Count = true
	criteria.IDsOnly = false

	payload, _, err := s.api.Post(ctx, searchPath, criteria)
	if err != nil {
		return 0, err
	}
	if payload == nil {
		return 0, nil
	}

	var response struct {
		ResultCount transport.FlexNumber `json:"resultCount"`
	}
	if err := json.Unmarshal(payload, &response); err != nil {
		return 0, client.Unknown(err)
	}
	if n := response.ResultCount.IntPtr(); n != nil {
		return *n, nil
	}
	return 0, nil
}

// SearchIDs runs the free ids-only request shape.
func (s *Service) SearchIDs(ctx context.Context, criteria transport.SearchCriteria) ([]string, error) {
	criteria.Count = false
	criteria.IDsOnly = true

	payload, _, err := s.api.Post(ctx, searchPath, criteria)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return []string{}, nil
	}

	var response struct {
		Data []transport.FlexString `json:"data"`
	}
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, client.Unknown(err)
	}

	ids := make([]string, 0, len(response.Data))
	for _, id := range response.Data {
		if id.String() != "" {
			ids = append(ids, id.String())
		}
	}
	return ids, nil
}

// DetailByID fetches the rich detail payload for one property. Returns
// (nil, nil) when the property is unknown upstream.
func (s *Service) DetailByID(ctx context.Context, id string) (*transport.DetailResult, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		var detail transport.DetailResult
		if err := json.Unmarshal(cached, &detail); err == nil {
			return &detail, nil
		}
		// A corrupt cache entry falls through to the API.
	}

	payload, _, err := s.api.Post(ctx, detailPath, map[string]string{"id": id})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	detail, raw, err := decodeDetail(payload)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, id, raw)
	return detail, nil
}

// DetailByAddress fetches the detail payload by street address. The parts
// concatenate into the single address string the upstream expects.
func (s *Service) DetailByAddress(ctx context.Context, street, city, state, zip string) (*transport.DetailResult, error) {
	parts := make([]string, 0, 4)
	for _, p := range []string{street, city, state, zip} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}

	payload, _, err := s.api.Post(ctx, detailPath, map[string]string{
		"address": strings.Join(parts, ", "),
	})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	detail, _, err := decodeDetail(payload)
	return detail, err
}

// decodeDetail unwraps the detail envelope, returning both the decoded
// result and the raw data bytes for caching.
func decodeDetail(payload []byte) (*transport.DetailResult, []byte, error) {
	var response struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, nil, client.Unknown(err)
	}
	if len(response.Data) == 0 || string(response.Data) == "null" {
		return nil, nil, nil
	}

	var detail transport.DetailResult
	if err := json.Unmarshal(response.Data, &detail); err != nil {
		return nil, nil, client.Unknown(err)
	}
	return &detail, response.Data, nil
}

// FilterDistressed returns the results where at least one of the requested
// distress flags is set (OR semantics). The metered tier in use does not
// support server-side distress filtering, so the filter reproduces it
// locally from the same flags the scorer reads.
func (s *Service) FilterDistressed(results []transport.SearchResult, want scoring.Flags) []transport.SearchResult {
	filtered := make([]transport.SearchResult, 0, len(results))
	for _, r := range results {
		if matchesAny(r.DistressFlags(), want) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesAny(got, want scoring.Flags) bool {
	checks := []struct {
		requested bool
		present   bool
	}{
		{want.PreForeclosure, got.PreForeclosure},
		{want.Auction, got.Auction},
		{want.Foreclosure, got.Foreclosure},
		{want.Vacant, got.Vacant},
		{want.AbsenteeOwner, got.AbsenteeOwner},
		{want.OutOfStateAbsenteeOwner, got.OutOfStateAbsenteeOwner},
		{want.InStateAbsenteeOwner, got.InStateAbsenteeOwner},
		{want.Inherited, got.Inherited},
		{want.Death, got.Death},
		{want.HighEquity, got.HighEquity},
		{want.FreeClear, got.FreeClear},
		{want.CorporateOwned, got.CorporateOwned},
		{want.TaxLien, got.TaxLien},
		{want.Judgment, got.Judgment},
		{want.REO, got.REO},
		{want.NegativeEquity, got.NegativeEquity},
		{want.PriceReduced, got.PriceReduced},
		{want.PrivateLender, got.PrivateLender},
		{want.AdjustableRate, got.AdjustableRate},
	}
	for _, c := range checks {
		if c.requested && c.present {
			return true
		}
	}
	return false
}
