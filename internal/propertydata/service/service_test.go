package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"dealflow_backend/internal/propertydata/transport"
	"dealflow_backend/internal/scoring"
)

// fakeAPI routes requests to per-path handlers so tests control the upstream
// without a server.
type fakeAPI struct {
	handle func(path string, body any) ([]byte, int, error)
	calls  []string
}

func (f *fakeAPI) Get(ctx context.Context, path string) ([]byte, int, error) {
	f.calls = append(f.calls, path)
	return f.handle(path, nil)
}

func (f *fakeAPI) Post(ctx context.Context, path string, body any) ([]byte, int, error) {
	f.calls = append(f.calls, path)
	return f.handle(path, body)
}

func TestSearch_DecodesResults(t *testing.T) {
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		return []byte(`{"data":[{"id":123,"vacant":1,"estimatedValue":"250,000"},{"id":"prop-2"}]}`), 200, nil
	}}
	svc := New(api, nil, nil)

	results, err := svc.Search(context.Background(), transport.SearchCriteria{State: "TX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID.String() != "123" {
		t.Fatalf("expected numeric id coerced to string, got %q", results[0].ID.String())
	}
	if !results[0].Vacant.Bool() {
		t.Fatal("expected vacant flag set from numeric 1")
	}
	if v := results[0].EstimatedValue.Float64Ptr(); v == nil || *v != 250000 {
		t.Fatalf("expected estimated value 250000, got %v", v)
	}
}

func TestSearch_ForcesFullShape(t *testing.T) {
	var sent transport.SearchCriteria
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		sent = body.(transport.SearchCriteria)
		return []byte(`{"data":[]}`), 200, nil
	}}
	svc := New(api, nil, nil)

	_, err := svc.Search(context.Background(), transport.SearchCriteria{State: "TX", Count: true, IDsOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.Count || sent.IDsOnly {
		t.Fatalf("search must clear count/ids_only, got count=%v ids_only=%v", sent.Count, sent.IDsOnly)
	}
}

func TestCount_DecodesStringCount(t *testing.T) {
	var sent transport.SearchCriteria
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		sent = body.(transport.SearchCriteria)
		return []byte(`{"resultCount":"1432"}`), 200, nil
	}}
	svc := New(api, nil, nil)

	n, err := svc.Count(context.Background(), transport.SearchCriteria{Zip: "75201"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1432 {
		t.Fatalf("expected count 1432, got %d", n)
	}
	if !sent.Count {
		t.Fatal("expected count request shape")
	}
}

func TestSearchIDs_DecodesMixedIDTypes(t *testing.T) {
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		return []byte(`{"data":["abc",456,null]}`), 200, nil
	}}
	svc := New(api, nil, nil)

	ids, err := svc.SearchIDs(context.Background(), transport.SearchCriteria{City: "Dallas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids (null dropped), got %d: %v", len(ids), ids)
	}
	if ids[0] != "abc" || ids[1] != "456" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestDetailByID_NotFound(t *testing.T) {
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		return nil, 404, nil
	}}
	svc := New(api, nil, nil)

	detail, err := svc.DetailByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("not-found must not be an error, got %v", err)
	}
	if detail != nil {
		t.Fatalf("expected nil detail, got %+v", detail)
	}
}

func TestDetailByAddress_ConcatenatesParts(t *testing.T) {
	var sentAddress string
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		sentAddress = body.(map[string]string)["address"]
		return []byte(`{"data":{"id":"p1"}}`), 200, nil
	}}
	svc := New(api, nil, nil)

	detail, err := svc.DetailByAddress(context.Background(), "123 Main St", "Dallas", "TX", "75201")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentAddress != "123 Main St, Dallas, TX, 75201" {
		t.Fatalf("unexpected address string: %q", sentAddress)
	}
	if detail == nil || detail.ID.String() != "p1" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestDetailByAddress_SkipsEmptyParts(t *testing.T) {
	var sentAddress string
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		sentAddress = body.(map[string]string)["address"]
		return []byte(`{"data":null}`), 200, nil
	}}
	svc := New(api, nil, nil)

	if _, err := svc.DetailByAddress(context.Background(), "123 Main St", "", "TX", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentAddress != "123 Main St, TX" {
		t.Fatalf("unexpected address string: %q", sentAddress)
	}
}

func TestFetchDetails_PartialFailure(t *testing.T) {
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		id := body.(map[string]string)["id"]
		if id == "B" {
			return nil, 500, errors.New("boom")
		}
		return []byte(fmt.Sprintf(`{"data":{"id":%q}}`, id)), 200, nil
	}}
	svc := New(api, nil, nil)

	var failedIDs []string
	var progress []int
	results := svc.FetchDetails(context.Background(), []string{"A", "B", "C"}, BatchOptions{
		OnError: func(id string, err error) {
			failedIDs = append(failedIDs, id)
		},
		OnProgress: func(done, total int) {
			if total != 3 {
				t.Fatalf("expected total 3, got %d", total)
			}
			progress = append(progress, done)
		},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID.String() != "A" || results[1].ID.String() != "C" {
		t.Fatalf("expected results A,C in order, got %s,%s", results[0].ID, results[1].ID)
	}
	if len(failedIDs) != 1 || failedIDs[0] != "B" {
		t.Fatalf("expected one failure for B, got %v", failedIDs)
	}
	if len(progress) != 3 || progress[0] != 1 || progress[1] != 2 || progress[2] != 3 {
		t.Fatalf("expected progress 1,2,3, got %v", progress)
	}
}

func TestFetchDetails_NotFoundCountsAsProgressOnly(t *testing.T) {
	api := &fakeAPI{handle: func(path string, body any) ([]byte, int, error) {
		if body.(map[string]string)["id"] == "gone" {
			return nil, 404, nil
		}
		return []byte(`{"data":{"id":"A"}}`), 200, nil
	}}
	svc := New(api, nil, nil)

	errCalls := 0
	progressCalls := 0
	results := svc.FetchDetails(context.Background(), []string{"A", "gone"}, BatchOptions{
		OnError:    func(id string, err error) { errCalls++ },
		OnProgress: func(done, total int) { progressCalls++ },
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if errCalls != 0 {
		t.Fatalf("not-found must not report an error, got %d calls", errCalls)
	}
	if progressCalls != 2 {
		t.Fatalf("expected progress for every id, got %d calls", progressCalls)
	}
}

func TestFilterDistressed_ORSemantics(t *testing.T) {
	decode := func(raw string) transport.SearchResult {
		var r transport.SearchResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		return r
	}

	results := []transport.SearchResult{
		decode(`{"id":"1","vacant":true}`),
		decode(`{"id":"2","preForeclosure":true}`),
		decode(`{"id":"3","highEquity":true}`),
		decode(`{"id":"4"}`),
	}

	svc := New(nil, nil, nil)
	filtered := svc.FilterDistressed(results, scoring.Flags{Vacant: true, PreForeclosure: true})

	if len(filtered) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(filtered))
	}
	if filtered[0].ID.String() != "1" || filtered[1].ID.String() != "2" {
		t.Fatalf("unexpected matches: %s,%s", filtered[0].ID, filtered[1].ID)
	}
}

func TestFilterDistressed_NoRequestedFlagsMatchesNothing(t *testing.T) {
	var r transport.SearchResult
	if err := json.Unmarshal([]byte(`{"id":"1","vacant":true,"auction":true}`), &r); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	svc := New(nil, nil, nil)
	if got := svc.FilterDistressed([]transport.SearchResult{r}, scoring.Flags{}); len(got) != 0 {
		t.Fatalf("expected no matches with empty filter, got %d", len(got))
	}
}
