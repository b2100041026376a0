package discovery

import (
	"context"

	proptransport "dealflow_backend/internal/properties/transport"
)

// ProfileScorer supplies the buyer-fit score blended with the distress
// score. The production ranking service lives outside this system; until it
// is wired, StaticProfileScorer stands in.
type ProfileScorer interface {
	Score(ctx context.Context, p proptransport.Property) (int, error)
}

// StaticProfileScorer returns the same profile score for every property.
type StaticProfileScorer struct {
	Value int
}

// Score implements ProfileScorer.
func (s StaticProfileScorer) Score(ctx context.Context, p proptransport.Property) (int, error) {
	return s.Value, nil
}
