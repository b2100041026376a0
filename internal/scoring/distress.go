// Package scoring computes distress/motivation scores for property leads.
// Scoring is pure: the same flags always produce the same score, with no
// hidden state. The weight and threshold set is versioned; any change to a
// weight, threshold, or condition below must bump ScorerVersion rather than
// silently edit the numbers.
package scoring

import "strings"

// ScorerVersion names the tuned weight/threshold set currently in effect.
const ScorerVersion = "2024.1"

// Flags is the distress-signal subset extracted from an upstream payload.
// Every field is independently optional; absent defaults to false/nil so a
// sparse payload still scores.
type Flags struct {
	PreForeclosure          bool     `json:"preForeclosure"`
	Auction                 bool     `json:"auction"`
	Foreclosure             bool     `json:"foreclosure"`
	Vacant                  bool     `json:"vacant"`
	AbsenteeOwner           bool     `json:"absenteeOwner"`
	OutOfStateAbsenteeOwner bool     `json:"outOfStateAbsenteeOwner"`
	InStateAbsenteeOwner    bool     `json:"inStateAbsenteeOwner"`
	Inherited               bool     `json:"inherited"`
	Death                   bool     `json:"death"`
	HighEquity              bool     `json:"highEquity"`
	EquityPercent           *float64 `json:"equityPercent"`
	FreeClear               bool     `json:"freeClear"`
	CorporateOwned          bool     `json:"corporateOwned"`
	TaxLien                 bool     `json:"taxLien"`
	Judgment                bool     `json:"judgment"`
	REO                     bool     `json:"reo"`
	NegativeEquity          bool     `json:"negativeEquity"`
	PriceReduced            bool     `json:"priceReduced"`
	PrivateLender           bool     `json:"privateLender"`
	AdjustableRate          bool     `json:"adjustableRate"`
	YearsOwned              *float64 `json:"yearsOwned"`
	TotalPropertiesOwned    *float64 `json:"totalPropertiesOwned"`
	DocumentType            string   `json:"documentType"`
}

// Grade buckets a score into a letter.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Motivation is the coarse seller-motivation tier used for filtering.
type Motivation string

const (
	MotivationHigh   Motivation = "HIGH"
	MotivationMedium Motivation = "MEDIUM"
	MotivationLow    Motivation = "LOW"
	MotivationNone   Motivation = "NONE"
)

// Signal is one evaluated distress condition with its weight.
type Signal struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Present     bool   `json:"present"`
	Description string `json:"description"`
}

// Score is the full scoring result for one property.
type Score struct {
	Score      int        `json:"score"`
	Grade      Grade      `json:"grade"`
	Motivation Motivation `json:"motivation"`
	Signals    []Signal   `json:"signals"`
	Version    string     `json:"version"`
}

// Tuned business thresholds. The 4-property portfolio cutoff and the 15-year
// ownership cutoff are literal constants inherited from the sales team's
// tuning, not derived values.
const (
	highEquityThresholdPct = 50.0
	longOwnershipYears     = 15.0
	portfolioMinProperties = 3
)

// Evaluate computes the distress score, grade, motivation tier, and the list
// of present signals for the given flags. Signals are returned in evaluation
// order and contain only entries that fired.
func Evaluate(f Flags) Score {
	signals := evaluateSignals(f)

	total := 0
	present := make([]Signal, 0, len(signals))
	for _, s := range signals {
		if !s.Present {
			continue
		}
		total += s.Weight
		present = append(present, s)
	}

	total = clampScore(total)

	return Score{
		Score:      total,
		Grade:      GradeFor(total),
		Motivation: MotivationFor(total),
		Signals:    present,
		Version:    ScorerVersion,
	}
}

// QuickScore computes only the numeric score, skipping the signal breakdown.
// It must stay numerically identical to Evaluate(f).Score for every input;
// bulk ranking paths depend on that equivalence.
func QuickScore(f Flags) int {
	total := 0
	for _, s := range evaluateSignals(f) {
		if s.Present {
			total += s.Weight
		}
	}
	return clampScore(total)
}

// evaluateSignals evaluates every signal with its weight and presence.
// Order matters: it is the order callers see in Score.Signals.
func evaluateSignals(f Flags) []Signal {
	outOfState := f.OutOfStateAbsenteeOwner
	// In-state and out-of-state absentee are alternatives: the owner is
	// credited once, at the higher applicable weight.
	inState := !outOfState && (f.InStateAbsenteeOwner || f.AbsenteeOwner)

	return []Signal{
		{
			Name:        "pre_foreclosure",
			Weight:      25,
			Present:     f.PreForeclosure,
			Description: "Active pre-foreclosure filing",
		},
		{
			Name:        "auction_foreclosure",
			Weight:      25,
			Present:     f.Auction || f.Foreclosure,
			Description: "Active auction or foreclosure",
		},
		{
			Name:        "lien_judgment",
			Weight:      20,
			Present:     f.TaxLien || f.Judgment,
			Description: "Tax lien or judgment on record",
		},
		{
			Name:        "vacant",
			Weight:      15,
			Present:     f.Vacant,
			Description: "Property is vacant",
		},
		{
			Name:        "out_of_state_absentee",
			Weight:      15,
			Present:     outOfState,
			Description: "Owner lives out of state",
		},
		{
			Name:        "in_state_absentee",
			Weight:      12,
			Present:     inState,
			Description: "Absentee owner within the state",
		},
		{
			Name:        "inherited",
			Weight:      15,
			Present:     f.Inherited,
			Description: "Recently inherited property",
		},
		{
			Name:        "death_transfer",
			Weight:      15,
			Present:     f.Death,
			Description: "Ownership transfer after a death",
		},
		{
			Name:        "negative_equity",
			Weight:      15,
			Present:     f.NegativeEquity,
			Description: "Underwater on the mortgage",
		},
		{
			Name:        "high_equity",
			Weight:      10,
			Present:     highEquity(f),
			Description: "Equity above 50%",
		},
		{
			Name:        "free_clear",
			Weight:      5,
			Present:     f.FreeClear,
			Description: "Owned free and clear",
		},
		{
			Name:        "long_ownership",
			Weight:      15,
			Present:     f.YearsOwned != nil && *f.YearsOwned > longOwnershipYears,
			Description: "Owned for more than 15 years",
		},
		{
			Name:        "corporate_owned",
			Weight:      5,
			Present:     f.CorporateOwned,
			Description: "Corporate or entity owner",
		},
		{
			Name:        "portfolio_owner",
			Weight:      10,
			Present:     portfolioOwner(f),
			Description: "Absentee owner holding more than 3 properties",
		},
		{
			Name:        "reo",
			Weight:      10,
			Present:     f.REO,
			Description: "Bank-owned after foreclosure",
		},
		{
			Name:        "price_reduced",
			Weight:      10,
			Present:     f.PriceReduced,
			Description: "Listing price reduced",
		},
		{
			Name:        "private_lender",
			Weight:      10,
			Present:     f.PrivateLender,
			Description: "Private or hard-money lender on record",
		},
		{
			Name:        "adjustable_rate",
			Weight:      5,
			Present:     f.AdjustableRate,
			Description: "Adjustable-rate mortgage",
		},
		{
			Name:        "quit_claim",
			Weight:      5,
			Present:     quitClaimDeed(f.DocumentType),
			Description: "Quit claim deed transfer",
		},
	}
}

func highEquity(f Flags) bool {
	if f.HighEquity {
		return true
	}
	return f.EquityPercent != nil && *f.EquityPercent > highEquityThresholdPct
}

func portfolioOwner(f Flags) bool {
	if f.TotalPropertiesOwned == nil || *f.TotalPropertiesOwned <= portfolioMinProperties {
		return false
	}
	return f.AbsenteeOwner || f.OutOfStateAbsenteeOwner || f.InStateAbsenteeOwner
}

func quitClaimDeed(documentType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(documentType))
	if normalized == "" {
		return false
	}
	if normalized == "qc" || normalized == "qcd" {
		return true
	}
	normalized = strings.ReplaceAll(normalized, "-", " ")
	return strings.Contains(normalized, "quit claim") || strings.Contains(normalized, "quitclaim")
}

// GradeFor is a total step function of the score under the versioned
// thresholds.
func GradeFor(score int) Grade {
	switch {
	case score >= 65:
		return GradeA
	case score >= 50:
		return GradeB
	case score >= 35:
		return GradeC
	case score >= 20:
		return GradeD
	default:
		return GradeF
	}
}

// MotivationFor buckets the score one tier lower than the grade breakpoints.
func MotivationFor(score int) Motivation {
	switch {
	case score >= 50:
		return MotivationHigh
	case score >= 35:
		return MotivationMedium
	case score >= 20:
		return MotivationLow
	default:
		return MotivationNone
	}
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
