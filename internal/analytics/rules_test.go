package analytics

import (
	"strings"
	"testing"

	"adscontrol-backend-go/internal/models"
)

func inputFor(contents []models.Content, campaigns []models.Campaign) *Input {
	return &Input{
		Metrics:   Aggregate("p", contents, campaigns),
		Contents:  contents,
		Campaigns: campaigns,
	}
}

// --- HighCostFollowers ---

func TestHighCostFollowers_SkipsWithoutData(t *testing.T) {
	in := inputFor([]models.Content{c1("flat", 100, 10, 10)}, nil)
	if got := HighCostFollowers(1.0)(in); len(got) != 0 {
		t.Fatalf("expected no suggestion, got %+v", got)
	}
}

func TestHighCostFollowers_BatchesAllItems(t *testing.T) {
	in := inputFor([]models.Content{
		c1("cheap", 100, 0, 100),
		c1("pricey-1", 300, 0, 100),
		c1("pricey-2", 400, 0, 100),
	}, nil)
	got := HighCostFollowers(1.0)(in)
	if len(got) != 1 {
		t.Fatalf("expected 1 batched suggestion, got %d", len(got))
	}
	if strings.Join(got[0].AffectedEntities, ",") != "pricey-1,pricey-2" {
		t.Errorf("unexpected affected entities %v", got[0].AffectedEntities)
	}
}

func TestHighCostFollowers_MarginRaisesBar(t *testing.T) {
	in := inputFor([]models.Content{c1("A", 250, 5000, 5150), c1("B", 300, 5000, 5080)}, nil)
	if got := HighCostFollowers(1.5)(in); len(got) != 0 {
		t.Fatalf("expected nothing above 1.5x average, got %+v", got)
	}
}

// --- BestFollowerPerformer ---

func TestBestFollowerPerformer_TieUsesIdentifier(t *testing.T) {
	in := inputFor([]models.Content{c1("zeta", 100, 0, 100), c1("alpha", 50, 0, 50)}, nil)
	got := BestFollowerPerformer(in)
	if len(got) != 1 || got[0].AffectedEntities[0] != "alpha" {
		t.Fatalf("expected alpha, got %+v", got)
	}
}

// --- FrequencyFatigue ---

func TestFrequencyFatigue_OnePerCampaign(t *testing.T) {
	campaigns := []models.Campaign{
		{Name: "exact", Type: models.TypeC2, AverageFrequency: 3.0},
		{Name: "tired", Type: models.TypeC2, AverageFrequency: 3.2},
		{Name: "exhausted", Type: models.TypeC4, AverageFrequency: 6},
	}
	got := FrequencyFatigue(3.0)(inputFor(nil, campaigns))
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(got))
	}
	for _, s := range got {
		if s.Type != TypeAlert || s.Priority != PriorityHigh || len(s.AffectedEntities) != 1 {
			t.Errorf("unexpected suggestion %+v", s)
		}
	}
}

// --- LowRetention ---

func TestLowRetention_ContentAndCampaigns(t *testing.T) {
	low := nurture("drop-off", models.TypeC2, 10, 10)
	low.Retention = models.Retention{P25: 1000, P100: 200}
	fine := nurture("sticky", models.TypeC3, 10, 10)
	fine.Retention = models.Retention{P25: 1000, P100: 600}
	missing := nurture("no-video", models.TypeC4, 10, 10)
	acquisition := c1("c1-video", 10, 0, 1)
	acquisition.Retention = models.Retention{P25: 1000, P100: 1}

	campaign := models.Campaign{Name: "camp", Type: models.TypeC2, Retention: models.Retention{P25: 500, P100: 100}}

	got := LowRetention(0.30)(inputFor([]models.Content{low, fine, missing, acquisition}, []models.Campaign{campaign}))
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].AffectedEntities[0] != "drop-off" || got[1].AffectedEntities[0] != "camp" {
		t.Errorf("unexpected entities %v, %v", got[0].AffectedEntities, got[1].AffectedEntities)
	}
	if got[0].Priority != PriorityMedium || got[0].Type != TypeOptimization {
		t.Errorf("unexpected classification %s/%s", got[0].Type, got[0].Priority)
	}
}

// --- HighCostEngagement / CampaignEfficiency / LowThruPlay ---

func TestHighCostEngagement(t *testing.T) {
	in := inputFor([]models.Content{
		nurture("a", models.TypeC2, 10, 100),
		nurture("b", models.TypeC3, 10, 100),
		nurture("c", models.TypeC4, 40, 100),
	}, nil)
	got := HighCostEngagement(1.3)(in)
	if len(got) != 1 || len(got[0].AffectedEntities) != 1 || got[0].AffectedEntities[0] != "c" {
		t.Fatalf("expected c flagged, got %+v", got)
	}
}

func TestCampaignEfficiency(t *testing.T) {
	campaigns := []models.Campaign{
		{ProjectID: "p", Name: "ok", Type: models.TypeC2, TotalSpend: 100, TotalEngagement: 1000},
		{ProjectID: "p", Name: "ok-2", Type: models.TypeC3, TotalSpend: 100, TotalEngagement: 1000},
		{ProjectID: "p", Name: "costly", Type: models.TypeC4, TotalSpend: 500, TotalEngagement: 1000},
	}
	got := CampaignEfficiency(1.5)(inputFor(nil, campaigns))
	if len(got) != 1 || got[0].AffectedEntities[0] != "costly" {
		t.Fatalf("expected costly flagged, got %+v", got)
	}
}

func TestBatchedRulesListAffectedByIdentifier(t *testing.T) {
	followers := HighCostFollowers(1.0)(inputFor([]models.Content{
		c1("zeta", 300, 0, 100),
		c1("cheap", 100, 0, 100),
		c1("alpha", 400, 0, 100),
	}, nil))
	if len(followers) != 1 || strings.Join(followers[0].AffectedEntities, ",") != "alpha,zeta" {
		t.Errorf("followers: unexpected %+v", followers)
	}

	engagement := HighCostEngagement(1.3)(inputFor([]models.Content{
		nurture("z", models.TypeC4, 40, 100),
		nurture("a", models.TypeC3, 10, 100),
		nurture("m", models.TypeC2, 40, 100),
		nurture("b", models.TypeC2, 10, 100),
	}, nil))
	if len(engagement) != 1 || strings.Join(engagement[0].AffectedEntities, ",") != "m,z" {
		t.Errorf("engagement: unexpected %+v", engagement)
	}

	efficiency := CampaignEfficiency(1.5)(inputFor(nil, []models.Campaign{
		{ProjectID: "p", Name: "zz", Type: models.TypeC4, TotalSpend: 500, TotalEngagement: 1000},
		{ProjectID: "p", Name: "ok", Type: models.TypeC2, TotalSpend: 100, TotalEngagement: 1000},
		{ProjectID: "p", Name: "costly", Type: models.TypeC4, TotalSpend: 500, TotalEngagement: 1000},
		{ProjectID: "p", Name: "ok-2", Type: models.TypeC3, TotalSpend: 100, TotalEngagement: 1000},
	}))
	if len(efficiency) != 1 || strings.Join(efficiency[0].AffectedEntities, ",") != "costly,zz" {
		t.Errorf("efficiency: unexpected %+v", efficiency)
	}
}

func TestLowThruPlay(t *testing.T) {
	campaigns := []models.Campaign{
		{Name: "webinars", Type: models.TypeC2, TotalThruPlay: 1200, TotalReach: 45000},
		{Name: "healthy", Type: models.TypeC2, TotalThruPlay: 9000, TotalReach: 45000},
		{Name: "no-video", Type: models.TypeC2, TotalReach: 45000},
	}
	got := LowThruPlay(0.15)(inputFor(nil, campaigns))
	if len(got) != 1 || got[0].AffectedEntities[0] != "webinars" {
		t.Fatalf("expected webinars flagged, got %+v", got)
	}
}
