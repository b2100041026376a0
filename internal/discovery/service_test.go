package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dealflow_backend/internal/discovery/transport"
	proptransport "dealflow_backend/internal/properties/transport"
	pdservice "dealflow_backend/internal/propertydata/service"
	upstream "dealflow_backend/internal/propertydata/transport"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/events"
	"dealflow_backend/platform/logger"
)

type fakeUpstream struct {
	count      int
	countErr   error
	results    []upstream.SearchResult
	ids        []string
	details    map[string]*upstream.DetailResult
	detailErrs map[string]error

	searchCalls    int
	searchIDsCalls int
}

func (f *fakeUpstream) Count(ctx context.Context, criteria upstream.SearchCriteria) (int, error) {
	return f.count, f.countErr
}

func (f *fakeUpstream) Search(ctx context.Context, criteria upstream.SearchCriteria) ([]upstream.SearchResult, error) {
	f.searchCalls++
	return f.results, nil
}

func (f *fakeUpstream) SearchIDs(ctx context.Context, criteria upstream.SearchCriteria) ([]string, error) {
	f.searchIDsCalls++
	return f.ids, nil
}

func (f *fakeUpstream) FetchDetails(ctx context.Context, ids []string, opts pdservice.BatchOptions) []*upstream.DetailResult {
	var out []*upstream.DetailResult
	for i, id := range ids {
		if err, ok := f.detailErrs[id]; ok {
			if opts.OnError != nil {
				opts.OnError(id, err)
			}
		} else if d, ok := f.details[id]; ok {
			out = append(out, d)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(ids))
		}
	}
	return out
}

func (f *fakeUpstream) FilterDistressed(results []upstream.SearchResult, want scoring.Flags) []upstream.SearchResult {
	var out []upstream.SearchResult
	for _, r := range results {
		flags := r.DistressFlags()
		if (want.Vacant && flags.Vacant) || (want.PreForeclosure && flags.PreForeclosure) {
			out = append(out, r)
		}
	}
	return out
}

type fakeStore struct {
	saved   []proptransport.Property
	saveErr map[string]error
}

func (f *fakeStore) Save(ctx context.Context, p proptransport.Property) (proptransport.Property, error) {
	if err, ok := f.saveErr[p.SourceID]; ok {
		return proptransport.Property{}, err
	}
	f.saved = append(f.saved, p)
	return p, nil
}

func searchResult(t *testing.T, raw string) upstream.SearchResult {
	t.Helper()
	var r upstream.SearchResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return r
}

func detailResult(t *testing.T, raw string) *upstream.DetailResult {
	t.Helper()
	var r upstream.DetailResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return &r
}

func testLogger() *logger.Logger {
	return logger.New("development")
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(eventName string, handler events.Handler) {}

func TestRun_ZeroCandidatesSpendsNothing(t *testing.T) {
	api := &fakeUpstream{count: 0}
	store := &fakeStore{}
	svc := New(api, store, nil, nil, testLogger())

	summary, err := svc.Run(context.Background(), transport.RunRequest{State: "TX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Available != 0 || summary.Saved != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if api.searchCalls != 0 || api.searchIDsCalls != 0 {
		t.Fatal("zero-count run must not search")
	}
}

func TestRun_CountErrorAborts(t *testing.T) {
	api := &fakeUpstream{countErr: errors.New("credits exhausted")}
	svc := New(api, &fakeStore{}, nil, nil, testLogger())

	if _, err := svc.Run(context.Background(), transport.RunRequest{State: "TX"}); err == nil {
		t.Fatal("expected error when count fails")
	}
}

func TestRun_FilteredFlow(t *testing.T) {
	api := &fakeUpstream{
		count: 3,
		results: []upstream.SearchResult{
			searchResult(t, `{"id":"A","vacant":true}`),
			searchResult(t, `{"id":"B"}`),
			searchResult(t, `{"id":"C","preForeclosure":true}`),
		},
		details: map[string]*upstream.DetailResult{
			"A": detailResult(t, `{"id":"A","vacant":true}`),
			"C": detailResult(t, `{"id":"C","preForeclosure":true}`),
		},
	}
	store := &fakeStore{}
	svc := New(api, store, StaticProfileScorer{Value: 70}, nil, testLogger())

	summary, err := svc.Run(context.Background(), transport.RunRequest{
		State: "TX",
		Flags: scoring.Flags{Vacant: true, PreForeclosure: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Searched != 3 || summary.Matched != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.DetailsFetched != 2 || summary.Saved != 2 || summary.Failures != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if api.searchIDsCalls != 0 {
		t.Fatal("flagged run must use the full search shape")
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected 2 saved records, got %d", len(store.saved))
	}
	if store.saved[0].SourceID != "A" || store.saved[0].ProfileScore != 70 {
		t.Fatalf("unexpected first record: %+v", store.saved[0])
	}
}

func TestRun_UnfilteredUsesFreeIDShape(t *testing.T) {
	api := &fakeUpstream{
		count: 2,
		ids:   []string{"A", "B"},
		details: map[string]*upstream.DetailResult{
			"A": detailResult(t, `{"id":"A"}`),
			"B": detailResult(t, `{"id":"B"}`),
		},
	}
	store := &fakeStore{}
	svc := New(api, store, nil, nil, testLogger())

	summary, err := svc.Run(context.Background(), transport.RunRequest{Zip: "75201"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.searchCalls != 0 || api.searchIDsCalls != 1 {
		t.Fatal("unfiltered run must use the ids-only shape")
	}
	if summary.Saved != 2 {
		t.Fatalf("expected 2 saved, got %d", summary.Saved)
	}
}

func TestRun_PartialFailuresDoNotAbort(t *testing.T) {
	api := &fakeUpstream{
		count: 3,
		ids:   []string{"A", "B", "C"},
		details: map[string]*upstream.DetailResult{
			"A": detailResult(t, `{"id":"A"}`),
			"C": detailResult(t, `{"id":"C"}`),
		},
		detailErrs: map[string]error{"B": errors.New("boom")},
	}
	store := &fakeStore{saveErr: map[string]error{"C": errors.New("db down")}}
	svc := New(api, store, nil, nil, testLogger())

	summary, err := svc.Run(context.Background(), transport.RunRequest{Zip: "75201"})
	if err != nil {
		t.Fatalf("run must survive partial failures, got %v", err)
	}
	if summary.Failures != 2 {
		t.Fatalf("expected 2 failures (fetch B, save C), got %d", summary.Failures)
	}
	if summary.Saved != 1 {
		t.Fatalf("expected 1 saved, got %d", summary.Saved)
	}
}

func TestRun_MaxPropertiesCapsDetailSpend(t *testing.T) {
	api := &fakeUpstream{
		count: 5,
		ids:   []string{"A", "B", "C", "D", "E"},
		details: map[string]*upstream.DetailResult{
			"A": detailResult(t, `{"id":"A"}`),
			"B": detailResult(t, `{"id":"B"}`),
		},
	}
	store := &fakeStore{}
	svc := New(api, store, nil, nil, testLogger())

	summary, err := svc.Run(context.Background(), transport.RunRequest{Zip: "75201", MaxProperties: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.DetailsFetched != 2 {
		t.Fatalf("expected detail spend capped at 2, got %d", summary.DetailsFetched)
	}
}

func TestRun_PublishesSummary(t *testing.T) {
	api := &fakeUpstream{count: 0}
	bus := &captureBus{}
	svc := New(api, &fakeStore{}, nil, bus, testLogger())

	if _, err := svc.Run(context.Background(), transport.RunRequest{RunID: "run-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(RunCompleted)
	if !ok {
		t.Fatalf("unexpected event type: %T", bus.published[0])
	}
	if event.Summary.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", event.Summary.RunID)
	}
}
