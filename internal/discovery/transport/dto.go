// Package transport defines the discovery-run request and summary shapes.
package transport

import (
	"dealflow_backend/internal/scoring"
)

// RunRequest describes one discovery pass: where to search and which
// distress profiles to keep. When Flags requests at least one signal, the
// run filters search results client-side before spending detail credits;
// otherwise every ID in the search window is fetched.
type RunRequest struct {
	RunID string `json:"runId,omitempty"`

	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty" validate:"omitempty,len=2"`
	Zip          string `json:"zip,omitempty"`
	County       string `json:"county,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`

	// MaxProperties caps how many detail records one run may spend. Zero
	// means no cap beyond the search window itself.
	MaxProperties int `json:"maxProperties,omitempty" validate:"gte=0,lte=1000"`

	Flags scoring.Flags `json:"flags"`
}

// RunSummary reports what one discovery pass did.
type RunSummary struct {
	RunID          string `json:"runId"`
	Available      int    `json:"available"`
	Searched       int    `json:"searched"`
	Matched        int    `json:"matched"`
	DetailsFetched int    `json:"detailsFetched"`
	Saved          int    `json:"saved"`
	Failures       int    `json:"failures"`
	DurationMs     int64  `json:"durationMs"`
}

// TriggerRunResponse acknowledges an enqueued discovery run.
type TriggerRunResponse struct {
	RunID  string `json:"runId"`
	Status string `json:"status"`
}
