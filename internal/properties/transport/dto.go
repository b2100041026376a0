// Package transport defines the normalized property record and the HTTP
// request/response DTOs of the properties context.
package transport

import (
	"dealflow_backend/internal/scoring"
)

// Property is the normalized record every upstream payload shape maps into.
// Text fields default to "", unknown numerics to nil, unknown booleans to
// false; downstream code never needs to re-check looseness absorbed at the
// wire boundary.
type Property struct {
	ID       string `json:"id,omitempty"`
	Source   string `json:"source"`
	SourceID string `json:"sourceId"`

	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`

	OwnerName    string `json:"ownerName"`
	PropertyType string `json:"propertyType"`

	Bedrooms   *float64 `json:"bedrooms"`
	Bathrooms  *float64 `json:"bathrooms"`
	SquareFeet *float64 `json:"squareFeet"`
	LotSqft    *float64 `json:"lotSqft"`
	YearBuilt  *float64 `json:"yearBuilt"`

	EstimatedValue  *float64 `json:"estimatedValue"`
	EstimatedEquity *float64 `json:"estimatedEquity"`
	EquityPercent   *float64 `json:"equityPercent"`
	LastSaleDate    string   `json:"lastSaleDate"`
	LastSaleAmount  *float64 `json:"lastSaleAmount"`

	Flags scoring.Flags `json:"flags"`

	// Metadata carries upstream fields without a first-class column. It is
	// a structured bag, persisted as jsonb, so new upstream fields survive
	// a round trip without schema changes.
	Metadata map[string]any `json:"metadata,omitempty"`

	DistressScore int                `json:"distressScore"`
	ProfileScore  int                `json:"profileScore"`
	CombinedScore int                `json:"combinedScore"`
	Grade         scoring.Grade      `json:"grade"`
	Motivation    scoring.Motivation `json:"motivation"`
	ScoreVersion  string             `json:"scoreVersion"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ListPropertiesRequest filters and paginates the ranked property list.
type ListPropertiesRequest struct {
	State      string `form:"state"`
	City       string `form:"city"`
	MinScore   int    `form:"minScore" validate:"gte=0,lte=100"`
	Motivation string `form:"motivation" validate:"omitempty,oneof=HIGH MEDIUM LOW NONE"`
	Limit      int    `form:"limit" validate:"gte=0,lte=200"`
	Offset     int    `form:"offset" validate:"gte=0"`
}

// ListPropertiesResponse is the paginated ranked list.
type ListPropertiesResponse struct {
	Items []Property `json:"items"`
	Total int        `json:"total"`
}

// ScorePreviewRequest scores a caller-supplied flag set without persisting
// anything, so list criteria can be tuned against known property profiles.
type ScorePreviewRequest struct {
	Flags        scoring.Flags `json:"flags"`
	ProfileScore *int          `json:"profileScore" validate:"omitempty,gte=0,lte=100"`
}

// ScorePreviewResponse is the scoring breakdown for a preview request.
type ScorePreviewResponse struct {
	Distress scoring.Score `json:"distress"`
	Combined *int          `json:"combined,omitempty"`
}
