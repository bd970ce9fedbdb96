package analytics

import (
	"fmt"
	"sort"

	"adscontrol-backend-go/internal/models"
)

// HighCostFollowers flags C1 content whose cost per follower is above the
// project average times margin. All flagged items share one suggestion, listed
// by identifier.
func HighCostFollowers(margin float64) Rule {
	return func(in *Input) []Suggestion {
		avg := in.Metrics.C1.AverageCostPerFollower
		if !in.Scope.contents() || avg == nil {
			return nil
		}
		limit := *avg * margin
		var affected []string
		for _, c := range in.Contents {
			if cost := CostPerFollower(c); cost != nil && *cost > limit {
				affected = append(affected, c.Identifier)
			}
		}
		if len(affected) == 0 {
			return nil
		}
		sort.Strings(affected)
		return []Suggestion{{
			Type:     TypeOptimization,
			Category: "C1 - Cost per follower",
			Priority: PriorityHigh,
			Title:    "C1 content with high cost per follower",
			Description: fmt.Sprintf(
				"%d C1 content item(s) cost more per follower than the project average (%.2f). "+
					"Review targeting, creative or budget.",
				len(affected), *avg,
			),
			RecommendedAction: "Review targeting, test new creatives or adjust the daily budget",
			AffectedEntities:  affected,
		}}
	}
}

// BestFollowerPerformer names the single C1 item with the lowest cost per follower.
func BestFollowerPerformer(in *Input) []Suggestion {
	if !in.Scope.contents() {
		return nil
	}
	var best *models.Content
	var bestCost float64
	for i := range in.Contents {
		c := in.Contents[i]
		cost := CostPerFollower(c)
		if cost == nil {
			continue
		}
		if best == nil || *cost < bestCost || (*cost == bestCost && c.Identifier < best.Identifier) {
			best = &in.Contents[i]
			bestCost = *cost
		}
	}
	if best == nil {
		return nil
	}
	return []Suggestion{{
		Type:     TypeOpportunity,
		Category: "C1 - Best practices",
		Priority: PriorityMedium,
		Title:    "Replicate the strategy of the best C1 content",
		Description: fmt.Sprintf(
			"%q has the best cost per follower (%.2f). Consider reusing elements of this creative.",
			best.Identifier, bestCost,
		),
		RecommendedAction: "Study the visuals, copy and targeting of the best performer",
		AffectedEntities:  []string{best.Identifier},
	}}
}

// FrequencyFatigue raises one alert per campaign shown too often to the same audience.
func FrequencyFatigue(ceiling float64) Rule {
	return func(in *Input) []Suggestion {
		if !in.Scope.campaigns() {
			return nil
		}
		var out []Suggestion
		for _, c := range in.Campaigns {
			if c.AverageFrequency <= ceiling {
				continue
			}
			out = append(out, Suggestion{
				Type:     TypeAlert,
				Category: "Delivery frequency",
				Priority: PriorityHigh,
				Title:    fmt.Sprintf("Campaign %q has a very high frequency", c.Name),
				Description: fmt.Sprintf(
					"Average frequency %.2f is above %.1f. The audience is at risk of fatigue.",
					c.AverageFrequency, ceiling,
				),
				RecommendedAction: "Broaden the audience or pause the campaign for a while",
				AffectedEntities:  []string{c.Name},
			})
		}
		return out
	}
}

// LowRetention flags nurture content and campaigns whose viewers rarely reach
// the end of the video. Zero checkpoints mean no video data and are skipped.
func LowRetention(floor float64) Rule {
	return func(in *Input) []Suggestion {
		var out []Suggestion
		check := func(name string, r models.Retention) {
			if r.P25 <= 0 || r.P100 <= 0 {
				return
			}
			rate := CompletionRate(r)
			if rate == nil || *rate >= floor {
				return
			}
			out = append(out, Suggestion{
				Type:     TypeOptimization,
				Category: "Video retention",
				Priority: PriorityMedium,
				Title:    fmt.Sprintf("Low retention on %q", name),
				Description: fmt.Sprintf(
					"Only %.1f%% of viewers who reached 25%% of the video watched it to the end.",
					*rate*100,
				),
				RecommendedAction: "Rework the opening hook, pacing and call to action",
				AffectedEntities:  []string{name},
			})
		}
		if in.Scope.contents() {
			for _, c := range in.Contents {
				if c.Type.Nurture() {
					check(c.Identifier, c.Retention)
				}
			}
		}
		if in.Scope.campaigns() {
			for _, c := range in.Campaigns {
				check(c.Name, c.Retention)
			}
		}
		return out
	}
}

// HighCostEngagement flags nurture content above the average cost per engagement times margin.
func HighCostEngagement(margin float64) Rule {
	return func(in *Input) []Suggestion {
		avg := in.Metrics.Nurture.AverageCostPerEngagement
		if !in.Scope.contents() || avg == nil {
			return nil
		}
		limit := *avg * margin
		var affected []string
		for _, c := range in.Contents {
			if cost := CostPerEngagement(c); cost != nil && *cost > limit {
				affected = append(affected, c.Identifier)
			}
		}
		if len(affected) == 0 {
			return nil
		}
		sort.Strings(affected)
		return []Suggestion{{
			Type:     TypeOptimization,
			Category: "C2-C4 - Cost per engagement",
			Priority: PriorityHigh,
			Title:    "Nurture content with high cost per engagement",
			Description: fmt.Sprintf(
				"%d nurture content item(s) cost more per engagement than the average (%.2f).",
				len(affected), *avg,
			),
			RecommendedAction: "Check how relevant the content is for the audience and test new formats",
			AffectedEntities:  affected,
		}}
	}
}

// CampaignEfficiency flags campaigns above the average campaign cost per engagement times margin.
func CampaignEfficiency(margin float64) Rule {
	return func(in *Input) []Suggestion {
		avg := in.Metrics.Campaigns.AverageCostPerEngagement
		if !in.Scope.campaigns() || avg == nil {
			return nil
		}
		limit := *avg * margin
		var affected []string
		for _, c := range in.Campaigns {
			if cost := CampaignCostPerEngagement(c); cost != nil && *cost > limit {
				affected = append(affected, c.Name)
			}
		}
		if len(affected) == 0 {
			return nil
		}
		sort.Strings(affected)
		return []Suggestion{{
			Type:     TypeOptimization,
			Category: "Campaign efficiency",
			Priority: PriorityMedium,
			Title:    "Campaigns with low engagement efficiency",
			Description: fmt.Sprintf(
				"%d campaign(s) cost more per engagement than the average (%.2f).",
				len(affected), *avg,
			),
			RecommendedAction: "Review audience segmentation and optimize creatives",
			AffectedEntities:  affected,
		}}
	}
}

// LowThruPlay flags campaigns where few reached users completed a ThruPlay.
func LowThruPlay(floor float64) Rule {
	return func(in *Input) []Suggestion {
		if !in.Scope.campaigns() {
			return nil
		}
		var out []Suggestion
		for _, c := range in.Campaigns {
			if c.TotalThruPlay <= 0 {
				continue
			}
			rate := ThruPlayRate(c.TotalThruPlay, c.TotalReach)
			if rate == nil || *rate >= floor {
				continue
			}
			out = append(out, Suggestion{
				Type:     TypeOptimization,
				Category: "Video engagement",
				Priority: PriorityMedium,
				Title:    fmt.Sprintf("Low ThruPlay rate on campaign %q", c.Name),
				Description: fmt.Sprintf(
					"ThruPlay rate is only %.1f%%. The video may not be holding attention.",
					*rate*100,
				),
				RecommendedAction: "Test new hooks, video formats or a shorter cut",
				AffectedEntities:  []string{c.Name},
			})
		}
		return out
	}
}
