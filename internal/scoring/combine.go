package scoring

import "math"

// Weights controls how the distress score and the externally supplied
// profile-fit score blend into one ranking number. The function does not
// require the weights to sum to 1; callers own supplying sane values.
type Weights struct {
	Distress float64 `json:"distress"`
	Profile  float64 `json:"profile"`
}

// DefaultWeights is the standard distress/profile blend.
var DefaultWeights = Weights{Distress: 0.6, Profile: 0.4}

// Combine blends a distress score with a profile-fit score using the given
// weights. The result is clamped to [0, 100] and rounded to the nearest
// integer.
func Combine(distressScore, profileScore int, w Weights) int {
	raw := float64(distressScore)*w.Distress + float64(profileScore)*w.Profile
	if raw > 100 {
		raw = 100
	}
	if raw < 0 {
		raw = 0
	}
	return int(math.Round(raw))
}
