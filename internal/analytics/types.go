package analytics

import "adscontrol-backend-go/internal/models"

type SuggestionType string

const (
	TypeOptimization SuggestionType = "optimization"
	TypeOpportunity  SuggestionType = "opportunity"
	TypeAlert        SuggestionType = "alert"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Suggestion is an actionable recommendation. It is recomputed on every analysis run.
type Suggestion struct {
	Type              SuggestionType `json:"type"`
	Category          string         `json:"category"`
	Priority          Priority       `json:"priority"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	RecommendedAction string         `json:"recommended_action"`
	AffectedEntities  []string       `json:"affected_entities"`

	rule int
}

// Scope narrows an analysis to content rules, campaign rules, or both.
type Scope string

const (
	ScopeGeneral  Scope = "general"
	ScopeContent  Scope = "content"
	ScopeCampaign Scope = "campaign"
)

func ParseScope(raw string) (Scope, bool) {
	switch Scope(raw) {
	case "", ScopeGeneral:
		return ScopeGeneral, true
	case ScopeContent, ScopeCampaign:
		return Scope(raw), true
	}
	return "", false
}

func (s Scope) contents() bool  { return s == ScopeGeneral || s == ScopeContent || s == "" }
func (s Scope) campaigns() bool { return s == ScopeGeneral || s == ScopeCampaign || s == "" }

// Input is everything the rules look at for one project.
type Input struct {
	Metrics   AggregateMetrics
	Contents  []models.Content
	Campaigns []models.Campaign
	Scope     Scope
}

// Rule inspects the input and returns zero or more suggestions.
type Rule func(in *Input) []Suggestion

// Thresholds used by the built-in rules.
type Thresholds struct {
	// HighCostMargin multiplies the average cost per follower; items above it are flagged.
	HighCostMargin      float64
	NurtureCostMargin   float64
	CampaignCostMargin  float64
	FrequencyCeiling    float64
	CompletionRateFloor float64
	ThruPlayRateFloor   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighCostMargin:      1.0,
		NurtureCostMargin:   1.3,
		CampaignCostMargin:  1.5,
		FrequencyCeiling:    3.0,
		CompletionRateFloor: 0.30,
		ThruPlayRateFloor:   0.15,
	}
}
