// Package analytics derives campaign KPIs from entity records and turns them into
// prioritized recommendations. Everything here is pure: inputs are never modified.
package analytics

import "adscontrol-backend-go/internal/models"

// FollowersGained is nil for non-C1 content.
func FollowersGained(c models.Content) *int64 {
	if c.Type != models.TypeC1 {
		return nil
	}
	gained := c.FollowersAfter - c.FollowersBefore
	return &gained
}

// CostPerFollower is defined only for C1 content that actually gained followers.
func CostPerFollower(c models.Content) *float64 {
	if c.Type != models.TypeC1 {
		return nil
	}
	return ratio(c.AmountSpent, float64(c.FollowersAfter-c.FollowersBefore))
}

// CostPerEngagement is defined only for nurture content with engagement.
func CostPerEngagement(c models.Content) *float64 {
	if !c.Type.Nurture() {
		return nil
	}
	return ratio(c.AmountSpent, float64(c.Engagement))
}

func CampaignCostPerEngagement(c models.Campaign) *float64 {
	if !c.Type.Nurture() {
		return nil
	}
	return ratio(c.TotalSpend, float64(c.TotalEngagement))
}

// CompletionRate is the share of viewers that reached the 25% checkpoint and
// also watched to the end.
func CompletionRate(r models.Retention) *float64 {
	return ratio(r.P100, r.P25)
}

func ThruPlayRate(thruPlay, reach int64) *float64 {
	return ratio(float64(thruPlay), float64(reach))
}

// PrimaryKPI is cost per follower for C1 and cost per engagement otherwise.
func PrimaryKPI(c models.Content) *float64 {
	if c.Type == models.TypeC1 {
		return CostPerFollower(c)
	}
	return CostPerEngagement(c)
}

func ratio(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	value := num / den
	return &value
}

type C1Metrics struct {
	TotalSpend             float64  `json:"total_spend"`
	TotalFollowersGained   int64    `json:"total_followers_gained"`
	AverageCostPerFollower *float64 `json:"average_cost_per_follower"`
	MinCostPerFollower     *float64 `json:"min_cost_per_follower"`
	MaxCostPerFollower     *float64 `json:"max_cost_per_follower"`
}

type NurtureMetrics struct {
	TotalSpend               float64  `json:"total_spend"`
	TotalEngagement          int64    `json:"total_engagement"`
	AverageCostPerEngagement *float64 `json:"average_cost_per_engagement"`
	MinCostPerEngagement     *float64 `json:"min_cost_per_engagement"`
	MaxCostPerEngagement     *float64 `json:"max_cost_per_engagement"`
}

type CampaignMetrics struct {
	TotalSpend               float64                    `json:"total_spend"`
	TotalEngagement          int64                      `json:"total_engagement"`
	TotalReach               int64                      `json:"total_reach"`
	AverageCostPerEngagement *float64                   `json:"average_cost_per_engagement"`
	CountByType              map[models.ContentType]int `json:"count_by_type"`
}

type AggregateMetrics struct {
	ProjectID          string                     `json:"project_id"`
	TotalContentCount  int                        `json:"total_content_count"`
	TotalCampaignCount int                        `json:"total_campaign_count"`
	ContentCountByType map[models.ContentType]int `json:"content_count_by_type"`
	C1                 C1Metrics                  `json:"c1_metrics"`
	Nurture            NurtureMetrics             `json:"nurture_metrics"`
	Campaigns          CampaignMetrics            `json:"campaign_metrics"`
}

// Aggregate summarizes a project's contents and campaigns. Items owned by other
// projects are skipped when projectID is set.
func Aggregate(projectID string, contents []models.Content, campaigns []models.Campaign) AggregateMetrics {
	filter := models.Filter{ProjectID: projectID}
	contents = models.Apply(contents, filter)
	campaigns = models.Apply(campaigns, filter)

	out := AggregateMetrics{
		ProjectID:          projectID,
		TotalContentCount:  len(contents),
		TotalCampaignCount: len(campaigns),
		ContentCountByType: map[models.ContentType]int{},
		Campaigns:          CampaignMetrics{CountByType: map[models.ContentType]int{}},
	}
	for _, t := range models.ContentTypes {
		out.ContentCountByType[t] = 0
	}
	for _, t := range models.CampaignTypes {
		out.Campaigns.CountByType[t] = 0
	}

	var followerCosts, engagementCosts, campaignCosts stats
	for _, c := range contents {
		out.ContentCountByType[c.Type]++
		switch {
		case c.Type == models.TypeC1:
			out.C1.TotalSpend += c.AmountSpent
			if gained := FollowersGained(c); gained != nil && *gained > 0 {
				out.C1.TotalFollowersGained += *gained
			}
			followerCosts.add(CostPerFollower(c))
		case c.Type.Nurture():
			out.Nurture.TotalSpend += c.AmountSpent
			out.Nurture.TotalEngagement += c.Engagement
			engagementCosts.add(CostPerEngagement(c))
		}
	}
	for _, c := range campaigns {
		out.Campaigns.CountByType[c.Type]++
		out.Campaigns.TotalSpend += c.TotalSpend
		out.Campaigns.TotalEngagement += c.TotalEngagement
		out.Campaigns.TotalReach += c.TotalReach
		campaignCosts.add(CampaignCostPerEngagement(c))
	}

	out.C1.AverageCostPerFollower, out.C1.MinCostPerFollower, out.C1.MaxCostPerFollower = followerCosts.summary()
	out.Nurture.AverageCostPerEngagement, out.Nurture.MinCostPerEngagement, out.Nurture.MaxCostPerEngagement = engagementCosts.summary()
	out.Campaigns.AverageCostPerEngagement, _, _ = campaignCosts.summary()
	return out
}

// stats accumulates non-nil values; nil means "no data" and is skipped.
type stats struct {
	sum      float64
	min, max float64
	n        int
}

func (s *stats) add(value *float64) {
	if value == nil {
		return
	}
	v := *value
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if s.n == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.n++
}

func (s stats) summary() (avg, min, max *float64) {
	if s.n == 0 {
		return nil, nil, nil
	}
	mean := s.sum / float64(s.n)
	lo, hi := s.min, s.max
	return &mean, &lo, &hi
}
