package service

import (
	"context"
	"testing"

	"dealflow_backend/internal/properties/repository"
	"dealflow_backend/internal/properties/transport"
	"dealflow_backend/internal/scoring"
)

type fakeRepo struct {
	saved    []transport.Property
	rescore  [][]transport.Property
	updates  []repository.ScoreUpdate
	rescored int
}

func (f *fakeRepo) Upsert(ctx context.Context, p transport.Property) (transport.Property, error) {
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (transport.Property, error) {
	return transport.Property{ID: id}, nil
}

func (f *fakeRepo) List(ctx context.Context, params repository.ListParams) ([]transport.Property, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ListForRescore(ctx context.Context, version string, limit int) ([]transport.Property, error) {
	if f.rescored >= len(f.rescore) {
		return nil, nil
	}
	batch := f.rescore[f.rescored]
	f.rescored++
	return batch, nil
}

func (f *fakeRepo) UpdateScores(ctx context.Context, update repository.ScoreUpdate) error {
	f.updates = append(f.updates, update)
	return nil
}

func TestSave_ComputesScoresBeforePersisting(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, scoring.DefaultWeights, nil)

	p := transport.Property{
		SourceID:     "p1",
		ProfileScore: 80,
		Flags:        scoring.Flags{PreForeclosure: true, Vacant: true},
	}

	saved, err := svc.Save(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.DistressScore != 40 {
		t.Fatalf("expected distress score 40, got %d", saved.DistressScore)
	}
	// 40*0.6 + 80*0.4 = 56
	if saved.CombinedScore != 56 {
		t.Fatalf("expected combined score 56, got %d", saved.CombinedScore)
	}
	if saved.Grade != scoring.GradeC {
		t.Fatalf("expected grade C, got %s", saved.Grade)
	}
	if saved.ScoreVersion != scoring.ScorerVersion {
		t.Fatalf("expected version %s, got %s", scoring.ScorerVersion, saved.ScoreVersion)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.saved))
	}
}

func TestPreview_CombinesOnlyWhenProfileSupplied(t *testing.T) {
	svc := New(&fakeRepo{}, scoring.DefaultWeights, nil)

	resp := svc.Preview(transport.ScorePreviewRequest{
		Flags: scoring.Flags{Vacant: true},
	})
	if resp.Distress.Score != 15 {
		t.Fatalf("expected distress 15, got %d", resp.Distress.Score)
	}
	if resp.Combined != nil {
		t.Fatal("expected no combined score without profile input")
	}

	profile := 100
	resp = svc.Preview(transport.ScorePreviewRequest{
		Flags:        scoring.Flags{Vacant: true},
		ProfileScore: &profile,
	})
	// 15*0.6 + 100*0.4 = 49
	if resp.Combined == nil || *resp.Combined != 49 {
		t.Fatalf("expected combined 49, got %v", resp.Combined)
	}
}

func TestRescore_ProcessesBatchesUntilEmpty(t *testing.T) {
	repo := &fakeRepo{
		rescore: [][]transport.Property{
			{
				{ID: "a", ProfileScore: 50, Flags: scoring.Flags{PreForeclosure: true}},
				{ID: "b", Flags: scoring.Flags{}},
			},
			{
				{ID: "c", Flags: scoring.Flags{Vacant: true}},
			},
		},
	}
	svc := New(repo, scoring.DefaultWeights, nil)

	updated, err := svc.Rescore(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 3 {
		t.Fatalf("expected 3 records rescored, got %d", updated)
	}

	first := repo.updates[0]
	if first.ID != "a" || first.DistressScore != 25 {
		t.Fatalf("unexpected first update: %+v", first)
	}
	// 25*0.6 + 50*0.4 = 35
	if first.CombinedScore != 35 {
		t.Fatalf("expected combined 35, got %d", first.CombinedScore)
	}
	if first.ScoreVersion != scoring.ScorerVersion {
		t.Fatalf("expected current version, got %s", first.ScoreVersion)
	}
}
