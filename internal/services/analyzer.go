package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"adscontrol-backend-go/internal/analytics"
	"adscontrol-backend-go/internal/metrics"
	"adscontrol-backend-go/internal/models"
	"adscontrol-backend-go/internal/store"
)

type Analysis struct {
	ProjectID        string                     `json:"project_id"`
	Scope            analytics.Scope            `json:"scope"`
	Metrics          analytics.AggregateMetrics `json:"metrics"`
	Suggestions      []analytics.Suggestion     `json:"suggestions"`
	TotalSuggestions int                        `json:"total_suggestions"`
	AnalyzedAt       time.Time                  `json:"analyzed_at"`
}

// Analyzer computes project metrics and suggestions on demand. Nothing is cached:
// every call reflects the store as it is.
type Analyzer struct {
	store  store.Store
	engine *analytics.Engine
	delay  time.Duration
	now    func() time.Time
}

func NewAnalyzer(st store.Store, th analytics.Thresholds, delay time.Duration) *Analyzer {
	return &Analyzer{
		store:  st,
		engine: analytics.NewEngine(th),
		delay:  delay,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Analyze loads the project's entities and runs the suggestion engine over them.
func (a *Analyzer) Analyze(ctx context.Context, projectID string, scope analytics.Scope) (Analysis, error) {
	started := time.Now()
	contents, campaigns, err := a.load(ctx, projectID)
	if err != nil {
		return Analysis{}, err
	}
	if err := a.wait(ctx); err != nil {
		return Analysis{}, err
	}
	aggregate, suggestions := a.engine.Analyze(projectID, analytics.Input{
		Contents:  contents,
		Campaigns: campaigns,
		Scope:     scope,
	})

	priorities := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		priorities = append(priorities, string(s.Priority))
	}
	metrics.RecordAnalysis(string(scope), priorities, time.Since(started))
	log.Ctx(ctx).Info().
		Str("project_id", projectID).
		Str("scope", string(scope)).
		Int("suggestions", len(suggestions)).
		Msg("analysis completed")

	return Analysis{
		ProjectID:        projectID,
		Scope:            scope,
		Metrics:          aggregate,
		Suggestions:      suggestions,
		TotalSuggestions: len(suggestions),
		AnalyzedAt:       a.now(),
	}, nil
}

// Metrics returns the aggregate figures without running any rule.
func (a *Analyzer) Metrics(ctx context.Context, projectID string) (analytics.AggregateMetrics, error) {
	contents, campaigns, err := a.load(ctx, projectID)
	if err != nil {
		return analytics.AggregateMetrics{}, err
	}
	return analytics.Aggregate(projectID, contents, campaigns), nil
}

// BestCreatives ranks contents per type. An empty projectID ranks across all projects.
func (a *Analyzer) BestCreatives(ctx context.Context, projectID string, window analytics.Window, limit int) (map[models.ContentType][]analytics.RankedCreative, error) {
	if !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
		return nil, ErrBadRequest("end_date must not be before start_date")
	}
	if projectID != "" {
		if _, err := a.store.GetProject(ctx, projectID); err != nil {
			return nil, storeError(err, "project not found")
		}
	}
	contents, err := a.store.ListContents(ctx, models.Filter{ProjectID: projectID})
	if err != nil {
		return nil, WrapError(err, "list contents")
	}
	return analytics.BestCreatives(contents, window, limit), nil
}

func (a *Analyzer) load(ctx context.Context, projectID string) ([]models.Content, []models.Campaign, error) {
	if _, err := a.store.GetProject(ctx, projectID); err != nil {
		return nil, nil, storeError(err, "project not found")
	}
	filter := models.Filter{ProjectID: projectID}
	var contents []models.Content
	var campaigns []models.Campaign
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := a.store.ListContents(gctx, filter)
		contents = items
		return WrapError(err, "list contents")
	})
	g.Go(func() error {
		items, err := a.store.ListCampaigns(gctx, filter)
		campaigns = items
		return WrapError(err, "list campaigns")
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return contents, campaigns, nil
}

// wait simulates the latency of a remote analysis call.
func (a *Analyzer) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
