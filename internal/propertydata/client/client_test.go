package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testConfig struct {
	apiKey      string
	baseURL     string
	minInterval time.Duration
	timeout     time.Duration
}

func (c testConfig) GetPropertyAPIKey() string                { return c.apiKey }
func (c testConfig) GetPropertyAPIBaseURL() string            { return c.baseURL }
func (c testConfig) GetPropertyAPIMinInterval() time.Duration { return c.minInterval }
func (c testConfig) GetPropertyAPITimeout() time.Duration     { return c.timeout }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(testConfig{
		apiKey:      "test-key",
		baseURL:     server.URL,
		minInterval: time.Millisecond,
		timeout:     5 * time.Second,
	}, nil)
	return client, server
}

func TestDo_MissingKeySkipsNetwork(t *testing.T) {
	hits := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	client.apiKey = ""

	start := time.Now()
	_, _, err := client.Get(context.Background(), "/v2/PropertyDetail")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if CodeOf(err) != CodeNotConfigured {
		t.Fatalf("expected code %s, got %s", CodeNotConfigured, CodeOf(err))
	}
	if hits != 0 {
		t.Fatalf("expected no upstream request, got %d", hits)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("missing key should fail without throttle delay, took %v", elapsed)
	}

	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatal("expected *Error in chain")
	}
	if typed.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", typed.Status)
	}
}

func TestDo_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{}`))
	})

	if _, _, err := client.Post(context.Background(), "/v2/PropertySearch", map[string]string{"state": "TX"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected x-api-key header %q, got %q", "test-key", gotKey)
	}
}

func TestDo_NotFoundIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	payload, status, err := client.Get(context.Background(), "/v2/PropertyDetail")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
	if payload != nil {
		t.Fatalf("expected nil payload, got %q", payload)
	}
}

func TestDo_RateLimitExceeded(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, status, err := client.Get(context.Background(), "/v2/PropertySearch")
	if CodeOf(err) != CodeRateLimitExceeded {
		t.Fatalf("expected code %s, got %s", CodeRateLimitExceeded, CodeOf(err))
	}
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", status)
	}
}

func TestDo_CreditsExhausted(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, _, err := client.Get(context.Background(), "/v2/PropertySearch")
	if CodeOf(err) != CodeCreditsExhausted {
		t.Fatalf("expected code %s, got %s", CodeCreditsExhausted, CodeOf(err))
	}
}

func TestDo_APIErrorUsesNestedMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"state is required"}}`))
	})

	_, _, err := client.Get(context.Background(), "/v2/PropertySearch")
	if CodeOf(err) != CodeAPIError {
		t.Fatalf("expected code %s, got %s", CodeAPIError, CodeOf(err))
	}
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatal("expected *Error in chain")
	}
	if typed.Message != "state is required" {
		t.Fatalf("expected upstream message, got %q", typed.Message)
	}
}

func TestDo_APIErrorUsesTopLevelMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid criteria"}`))
	})

	_, _, err := client.Get(context.Background(), "/v2/PropertySearch")
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatal("expected *Error in chain")
	}
	if typed.Message != "invalid criteria" {
		t.Fatalf("expected top-level message, got %q", typed.Message)
	}
}

func TestDo_APIErrorFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	})

	_, _, err := client.Get(context.Background(), "/v2/PropertySearch")
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatal("expected *Error in chain")
	}
	if typed.Message != "API error: 500" {
		t.Fatalf("expected fallback message, got %q", typed.Message)
	}
}

func TestDo_TransportFailureIsUnknown(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, _, err := client.Get(context.Background(), "/v2/PropertySearch")
	if CodeOf(err) != CodeUnknown {
		t.Fatalf("expected code %s, got %s", CodeUnknown, CodeOf(err))
	}
}
