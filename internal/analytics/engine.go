package analytics

import "adscontrol-backend-go/internal/models"

// Engine runs every registered rule against an Input and ranks the results.
type Engine struct {
	rules []Rule
}

// NewEngine registers the built-in rules in evaluation order. The order matters:
// it breaks ties between suggestions of equal priority.
func NewEngine(th Thresholds) *Engine {
	return &Engine{
		rules: []Rule{
			HighCostFollowers(th.HighCostMargin),
			BestFollowerPerformer,
			FrequencyFatigue(th.FrequencyCeiling),
			LowRetention(th.CompletionRateFloor),
			HighCostEngagement(th.NurtureCostMargin),
			CampaignEfficiency(th.CampaignCostMargin),
			LowThruPlay(th.ThruPlayRateFloor),
		},
	}
}

// Run evaluates all rules; none short-circuits another.
func (e *Engine) Run(in *Input) []Suggestion {
	all := []Suggestion{}
	if in == nil {
		return all
	}
	for i, rule := range e.rules {
		for _, s := range rule(in) {
			s.rule = i
			all = append(all, s)
		}
	}
	return RankSuggestions(all)
}

// Analyze aggregates the project's entities and runs the engine over them.
func (e *Engine) Analyze(projectID string, in Input) (AggregateMetrics, []Suggestion) {
	filter := models.Filter{ProjectID: projectID}
	in.Contents = models.Apply(in.Contents, filter)
	in.Campaigns = models.Apply(in.Campaigns, filter)
	in.Metrics = Aggregate(projectID, in.Contents, in.Campaigns)
	return in.Metrics, e.Run(&in)
}
