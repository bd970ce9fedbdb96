package analytics

import (
	"sort"
	"time"

	"adscontrol-backend-go/internal/models"
)

const DefaultCreativeLimit = 10

// Window restricts creatives to boosts that started on or after From and ended on
// or before To. Zero bounds are open.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) contains(c models.Content) bool {
	if !w.From.IsZero() && (c.StartDate == nil || c.StartDate.Before(w.From)) {
		return false
	}
	if !w.To.IsZero() && (c.EndDate == nil || c.EndDate.After(w.To)) {
		return false
	}
	return true
}

type RankedCreative struct {
	Content models.Content `json:"content"`
	KPI     *float64       `json:"kpi"`
}

// BestCreatives ranks contents per funnel type by their primary KPI, cheapest
// first. Items without a KPI sink to the bottom.
func BestCreatives(contents []models.Content, window Window, limit int) map[models.ContentType][]RankedCreative {
	if limit <= 0 {
		limit = DefaultCreativeLimit
	}
	out := make(map[models.ContentType][]RankedCreative, len(models.ContentTypes))
	for _, t := range models.ContentTypes {
		out[t] = []RankedCreative{}
	}
	for _, c := range contents {
		if !window.contains(c) {
			continue
		}
		if _, ok := out[c.Type]; !ok {
			continue
		}
		out[c.Type] = append(out[c.Type], RankedCreative{Content: c, KPI: PrimaryKPI(c)})
	}
	for t, items := range out {
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].KPI, items[j].KPI
			switch {
			case a == nil && b == nil:
				return items[i].Content.Identifier < items[j].Content.Identifier
			case a == nil:
				return false
			case b == nil:
				return true
			case *a != *b:
				return *a < *b
			}
			return items[i].Content.Identifier < items[j].Content.Identifier
		})
		if len(items) > limit {
			items = items[:limit]
		}
		out[t] = items
	}
	return out
}
