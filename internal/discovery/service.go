// Package discovery orchestrates one property acquisition pass: size the
// search, collect candidate IDs, spend detail credits on the survivors,
// normalize, score, and persist.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dealflow_backend/internal/discovery/transport"
	"dealflow_backend/internal/properties/mapper"
	proptransport "dealflow_backend/internal/properties/transport"
	pdservice "dealflow_backend/internal/propertydata/service"
	upstream "dealflow_backend/internal/propertydata/transport"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/events"
	"dealflow_backend/platform/logger"
)

// PropertyData is the upstream surface the discovery run drives.
type PropertyData interface {
	Count(ctx context.Context, criteria upstream.SearchCriteria) (int, error)
	Search(ctx context.Context, criteria upstream.SearchCriteria) ([]upstream.SearchResult, error)
	SearchIDs(ctx context.Context, criteria upstream.SearchCriteria) ([]string, error)
	FetchDetails(ctx context.Context, ids []string, opts pdservice.BatchOptions) []*upstream.DetailResult
	FilterDistressed(results []upstream.SearchResult, want scoring.Flags) []upstream.SearchResult
}

// PropertyStore persists normalized, scored records.
type PropertyStore interface {
	Save(ctx context.Context, p proptransport.Property) (proptransport.Property, error)
}

// Service runs discovery passes.
type Service struct {
	upstream PropertyData
	store    PropertyStore
	profiles ProfileScorer
	bus      events.Bus
	log      *logger.Logger
}

// New creates a discovery service. The bus may be nil.
func New(upstreamAPI PropertyData, store PropertyStore, profiles ProfileScorer, bus events.Bus, log *logger.Logger) *Service {
	if profiles == nil {
		profiles = StaticProfileScorer{}
	}
	return &Service{
		upstream: upstreamAPI,
		store:    store,
		profiles: profiles,
		bus:      bus,
		log:      log,
	}
}

// Run executes one discovery pass. One failing property never aborts the
// run; failures are counted and reported in the summary. The free count
// request sizes the search before any record credit is spent.
func (s *Service) Run(ctx context.Context, req transport.RunRequest) (transport.RunSummary, error) {
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)
	log := s.log

	start := time.Now()
	summary := transport.RunSummary{RunID: runID}
	defer func() {
		summary.DurationMs = time.Since(start).Milliseconds()
		s.publish(ctx, summary)
	}()

	criteria := upstream.SearchCriteria{
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		County:       req.County,
		PropertyType: req.PropertyType,
	}
	if req.MaxProperties > 0 {
		criteria.Size = req.MaxProperties
	}

	available, err := s.upstream.Count(ctx, criteria)
	if err != nil {
		return summary, fmt.Errorf("count candidates: %w", err)
	}
	summary.Available = available
	if available == 0 {
		log.Info("discovery run found no candidates", "run_id", runID)
		return summary, nil
	}

	ids, err := s.collectIDs(ctx, criteria, req, &summary)
	if err != nil {
		return summary, err
	}
	if req.MaxProperties > 0 && len(ids) > req.MaxProperties {
		ids = ids[:req.MaxProperties]
	}
	if len(ids) == 0 {
		log.Info("discovery run matched no candidates", "run_id", runID, "available", available)
		return summary, nil
	}

	details := s.upstream.FetchDetails(ctx, ids, pdservice.BatchOptions{
		OnProgress: func(done, total int) {
			log.DiscoveryProgress(runID, done, total)
		},
		OnError: func(id string, err error) {
			summary.Failures++
			log.Error("detail fetch failed", "run_id", runID, "id", id, "error", err)
		},
	})
	summary.DetailsFetched = len(details)

	for _, detail := range details {
		record := mapper.FromDetailResult(detail)

		profile, err := s.profiles.Score(ctx, record)
		if err != nil {
			log.Error("profile score failed", "run_id", runID, "source_id", record.SourceID, "error", err)
			profile = 0
		}
		record.ProfileScore = profile

		if _, err := s.store.Save(ctx, record); err != nil {
			summary.Failures++
			log.Error("property save failed", "run_id", runID, "source_id", record.SourceID, "error", err)
			continue
		}
		summary.Saved++
	}

	log.Info("discovery run complete",
		"run_id", runID,
		"available", summary.Available,
		"matched", summary.Matched,
		"details", summary.DetailsFetched,
		"saved", summary.Saved,
		"failures", summary.Failures,
	)
	return summary, nil
}

// collectIDs gathers candidate IDs through the free ids-only shape, or
// through a metered search plus the client-side distress filter when the
// request asks for specific signals.
func (s *Service) collectIDs(ctx context.Context, criteria upstream.SearchCriteria, req transport.RunRequest, summary *transport.RunSummary) ([]string, error) {
	if !anyFlagRequested(req.Flags) {
		ids, err := s.upstream.SearchIDs(ctx, criteria)
		if err != nil {
			return nil, fmt.Errorf("search ids: %w", err)
		}
		summary.Searched = len(ids)
		summary.Matched = len(ids)
		return ids, nil
	}

	results, err := s.upstream.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	summary.Searched = len(results)

	matched := s.upstream.FilterDistressed(results, req.Flags)
	summary.Matched = len(matched)

	ids := make([]string, 0, len(matched))
	for _, r := range matched {
		if id := r.ID.String(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Service) publish(ctx context.Context, summary transport.RunSummary) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, RunCompleted{
		BaseEvent: events.NewBaseEvent(),
		Summary:   summary,
	})
}

func anyFlagRequested(f scoring.Flags) bool {
	return f.PreForeclosure || f.Auction || f.Foreclosure || f.Vacant ||
		f.AbsenteeOwner || f.OutOfStateAbsenteeOwner || f.InStateAbsenteeOwner ||
		f.Inherited || f.Death || f.HighEquity || f.FreeClear || f.CorporateOwned ||
		f.TaxLien || f.Judgment || f.REO || f.NegativeEquity || f.PriceReduced ||
		f.PrivateLender || f.AdjustableRate
}
