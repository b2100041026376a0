// Package service implements the properties application logic: the ranked
// lead list, score previews, and version-driven rescoring of stored records.
package service

import (
	"context"
	"fmt"

	"dealflow_backend/internal/properties/repository"
	"dealflow_backend/internal/properties/transport"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/logger"
)

// Repository is the persistence surface the service depends on.
type Repository interface {
	Upsert(ctx context.Context, p transport.Property) (transport.Property, error)
	GetByID(ctx context.Context, id string) (transport.Property, error)
	List(ctx context.Context, params repository.ListParams) ([]transport.Property, int, error)
	ListForRescore(ctx context.Context, version string, limit int) ([]transport.Property, error)
	UpdateScores(ctx context.Context, update repository.ScoreUpdate) error
}

// Service provides property lead operations.
type Service struct {
	repo    Repository
	weights scoring.Weights
	log     *logger.Logger
}

// New creates a properties service.
func New(repo Repository, weights scoring.Weights, log *logger.Logger) *Service {
	return &Service{repo: repo, weights: weights, log: log}
}

// Save scores a normalized record and persists it. The distress score is
// always recomputed from the record's flags; the profile score is taken as
// supplied on the record.
func (s *Service) Save(ctx context.Context, p transport.Property) (transport.Property, error) {
	result := scoring.Evaluate(p.Flags)

	p.DistressScore = result.Score
	p.CombinedScore = scoring.Combine(result.Score, p.ProfileScore, s.weights)
	p.Grade = result.Grade
	p.Motivation = result.Motivation
	p.ScoreVersion = result.Version

	return s.repo.Upsert(ctx, p)
}

// Get retrieves one property by record ID.
func (s *Service) Get(ctx context.Context, id string) (transport.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves the ranked property list.
func (s *Service) List(ctx context.Context, req transport.ListPropertiesRequest) (transport.ListPropertiesResponse, error) {
	items, total, err := s.repo.List(ctx, repository.ListParams{
		State:      req.State,
		City:       req.City,
		MinScore:   req.MinScore,
		Motivation: req.Motivation,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return transport.ListPropertiesResponse{}, err
	}
	if items == nil {
		items = []transport.Property{}
	}
	return transport.ListPropertiesResponse{Items: items, Total: total}, nil
}

// Preview scores a caller-supplied flag set without persisting anything.
func (s *Service) Preview(req transport.ScorePreviewRequest) transport.ScorePreviewResponse {
	result := scoring.Evaluate(req.Flags)

	resp := transport.ScorePreviewResponse{Distress: result}
	if req.ProfileScore != nil {
		combined := scoring.Combine(result.Score, *req.ProfileScore, s.weights)
		resp.Combined = &combined
	}
	return resp
}

// Rescore recomputes scores for every stored record whose score version
// differs from the current one, in batches. It returns the number of records
// updated. QuickScore keeps the bulk pass cheap; the stored flags already
// carry everything the scorer reads.
func (s *Service) Rescore(ctx context.Context, batchSize int) (int, error) {
	updated := 0

	for {
		batch, err := s.repo.ListForRescore(ctx, scoring.ScorerVersion, batchSize)
		if err != nil {
			return updated, fmt.Errorf("load rescore batch: %w", err)
		}
		if len(batch) == 0 {
			return updated, nil
		}

		for _, p := range batch {
			distress := scoring.QuickScore(p.Flags)
			err := s.repo.UpdateScores(ctx, repository.ScoreUpdate{
				ID:            p.ID,
				DistressScore: distress,
				CombinedScore: scoring.Combine(distress, p.ProfileScore, s.weights),
				Grade:         scoring.GradeFor(distress),
				Motivation:    scoring.MotivationFor(distress),
				ScoreVersion:  scoring.ScorerVersion,
			})
			if err != nil {
				return updated, fmt.Errorf("rescore property %s: %w", p.ID, err)
			}
			updated++
		}

		if s.log != nil {
			s.log.Info("rescore batch complete", "updated", updated, "version", scoring.ScorerVersion)
		}
	}
}
