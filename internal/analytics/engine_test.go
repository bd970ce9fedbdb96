package analytics

import (
	"reflect"
	"testing"

	"adscontrol-backend-go/internal/models"
)

func newEngine() *Engine {
	return NewEngine(DefaultThresholds())
}

// --- Engine.Run ---

func TestEngineRun_EmptyProject(t *testing.T) {
	_, suggestions := newEngine().Analyze("p", Input{})
	if suggestions == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(suggestions))
	}
}

func TestEngineRun_NilInput(t *testing.T) {
	if got := newEngine().Run(nil); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(got))
	}
}

func TestEngineAnalyze_FollowerScenario(t *testing.T) {
	contents := []models.Content{
		c1("A", 250, 5000, 5150),
		c1("B", 300, 5000, 5080),
	}
	metrics, suggestions := newEngine().Analyze("p", Input{Contents: contents})

	approx(t, "avg cpf", metrics.C1.AverageCostPerFollower, 2.7083)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(suggestions), suggestions)
	}
	first, second := suggestions[0], suggestions[1]
	if first.Type != TypeOptimization || first.Priority != PriorityHigh {
		t.Errorf("expected high optimization first, got %s/%s", first.Type, first.Priority)
	}
	if !reflect.DeepEqual(first.AffectedEntities, []string{"B"}) {
		t.Errorf("expected B flagged, got %v", first.AffectedEntities)
	}
	if second.Type != TypeOpportunity || second.Priority != PriorityMedium {
		t.Errorf("expected medium opportunity second, got %s/%s", second.Type, second.Priority)
	}
	if !reflect.DeepEqual(second.AffectedEntities, []string{"A"}) {
		t.Errorf("expected A as best performer, got %v", second.AffectedEntities)
	}
}

func TestEngineRun_OrderAndIdempotence(t *testing.T) {
	in := Input{
		Contents: []models.Content{
			c1("A", 250, 5000, 5150),
			c1("B", 300, 5000, 5080),
		},
		Campaigns: []models.Campaign{
			{ID: "k", ProjectID: "p", Name: "Webinars", Type: models.TypeC2, AverageFrequency: 3.4},
		},
	}
	engine := newEngine()
	_, first := engine.Analyze("p", in)
	_, second := engine.Analyze("p", in)

	want := []Priority{PriorityHigh, PriorityHigh, PriorityMedium}
	if len(first) != len(want) {
		t.Fatalf("expected %d suggestions, got %d: %+v", len(want), len(first), first)
	}
	for i, p := range want {
		if first[i].Priority != p {
			t.Errorf("index %d: expected %s, got %s", i, p, first[i].Priority)
		}
	}
	if first[0].Type != TypeOptimization || first[1].Type != TypeAlert {
		t.Errorf("expected rule order optimization then alert, got %s then %s", first[0].Type, first[1].Type)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output on repeated runs")
	}
	if in.Contents[0].Identifier != "A" || len(in.Contents) != 2 {
		t.Error("input was modified")
	}
}

func TestEngineAnalyze_IgnoresOtherProjects(t *testing.T) {
	contents := []models.Content{
		c1("A", 250, 5000, 5150),
		{ID: "x", ProjectID: "other", Identifier: "X", Type: models.TypeC1, AmountSpent: 10, FollowersAfter: 100},
	}
	_, suggestions := newEngine().Analyze("p", Input{Contents: contents})
	if len(suggestions) != 1 || suggestions[0].AffectedEntities[0] != "A" {
		t.Fatalf("expected only the best-performer suggestion for A, got %+v", suggestions)
	}
}

func TestEngineAnalyze_ScopeCampaignSkipsContentRules(t *testing.T) {
	in := Input{
		Contents:  []models.Content{c1("A", 250, 5000, 5150), c1("B", 300, 5000, 5080)},
		Campaigns: []models.Campaign{{ProjectID: "p", Name: "K", Type: models.TypeC3, AverageFrequency: 5}},
		Scope:     ScopeCampaign,
	}
	_, suggestions := newEngine().Analyze("p", in)
	if len(suggestions) != 1 || suggestions[0].Type != TypeAlert {
		t.Fatalf("expected a single frequency alert, got %+v", suggestions)
	}
}

// --- RankSuggestions ---

func TestRankSuggestions_TieBreaks(t *testing.T) {
	in := []Suggestion{
		{Priority: PriorityLow, AffectedEntities: []string{"a"}, rule: 0},
		{Priority: PriorityMedium, AffectedEntities: []string{"b"}, rule: 3},
		{Priority: PriorityMedium, AffectedEntities: []string{"a"}, rule: 3},
		{Priority: PriorityHigh, AffectedEntities: []string{"z"}, rule: 2},
		{Priority: PriorityHigh, AffectedEntities: []string{"y"}, rule: 0},
	}
	got := RankSuggestions(in)
	order := make([]string, 0, len(got))
	for _, s := range got {
		order = append(order, string(s.Priority)+":"+s.AffectedEntities[0])
	}
	want := []string{"high:y", "high:z", "medium:a", "medium:b", "low:a"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
	if in[0].Priority != PriorityLow {
		t.Error("RankSuggestions modified its input")
	}
}

func TestParseScope(t *testing.T) {
	for raw, want := range map[string]Scope{"": ScopeGeneral, "general": ScopeGeneral, "content": ScopeContent, "campaign": ScopeCampaign} {
		got, ok := ParseScope(raw)
		if !ok || got != want {
			t.Errorf("ParseScope(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseScope("everything"); ok {
		t.Error("expected unknown scope to be rejected")
	}
}
