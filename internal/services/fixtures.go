package services

import (
	"context"

	"github.com/rs/zerolog/log"
)

type fixtureProject struct {
	project   Payload
	contents  []Payload
	campaigns []Payload
	// campaign index -> content indexes
	links map[int][]int
}

var fixtures = []fixtureProject{
	{
		project: Payload{
			"name":                     "Campanha Verão 2025",
			"description":              "Campanha de verão para aumento de seguidores e engajamento",
			"monthly_spend_projection": 5000,
		},
		contents: []Payload{
			{
				"identifier":       "Post Motivacional #1",
				"type":             "C1",
				"amount_spent":     250,
				"followers_before": 5000,
				"followers_after":  5150,
				"reach":            15000,
				"engagement":       1200,
				"start_date":       "2025-01-15",
				"end_date":         "2025-01-17",
			},
			{
				"identifier":        "Webinar Gratuito",
				"type":              "C2",
				"amount_spent":      180,
				"engagement":        950,
				"reach":             8000,
				"thru_play_count":   450,
				"frequency":         1.8,
				"cpm":               22.5,
				"retention_25_pct":  620,
				"retention_50_pct":  410,
				"retention_75_pct":  290,
				"retention_95_pct":  180,
				"retention_100_pct": 150,
				"start_date":        "2025-01-20",
				"end_date":          "2025-01-25",
			},
		},
		campaigns: []Payload{
			{
				"name":              "Nutrição de Leads - Webinars",
				"type":              "C2",
				"objective":         "Engajamento",
				"total_engagement":  2500,
				"total_reach":       45000,
				"total_thru_play":   1200,
				"average_frequency": 2.1,
				"total_spend":       450,
				"start_date":        "2025-01-20",
				"end_date":          "2025-02-10",
			},
		},
		links: map[int][]int{0: {1}},
	},
	{
		project: Payload{
			"name":                     "Lançamento Produto X",
			"description":              "Lançamento do novo produto com foco em conversão",
			"monthly_spend_projection": 8000,
		},
		campaigns: []Payload{
			{
				"name":              "Conversão - Oferta Limitada",
				"type":              "C4",
				"objective":         "Conversão",
				"total_engagement":  850,
				"total_reach":       12000,
				"average_frequency": 3.4,
				"total_spend":       298,
				"start_date":        "2025-02-01",
				"end_date":          "2025-02-14",
			},
		},
	},
}

// SeedFixtures loads the demo projects through the catalog so they pass the same
// validation as client writes. It is meant for an empty store.
func SeedFixtures(ctx context.Context, catalog *Catalog) error {
	for _, fx := range fixtures {
		project, err := catalog.CreateProject(ctx, fx.project)
		if err != nil {
			return WrapError(err, "seed project")
		}
		contentIDs := make([]string, 0, len(fx.contents))
		for _, payload := range fx.contents {
			content, err := catalog.CreateContent(ctx, withProject(payload, project.ID))
			if err != nil {
				return WrapError(err, "seed content")
			}
			contentIDs = append(contentIDs, content.ID)
		}
		for i, payload := range fx.campaigns {
			campaign, err := catalog.CreateCampaign(ctx, withProject(payload, project.ID))
			if err != nil {
				return WrapError(err, "seed campaign")
			}
			for _, idx := range fx.links[i] {
				if _, err := catalog.LinkContent(ctx, campaign.ID, contentIDs[idx]); err != nil {
					return WrapError(err, "seed link")
				}
			}
		}
		log.Info().Str("project", project.Name).Msg("fixture project seeded")
	}
	return nil
}

func withProject(payload Payload, projectID string) Payload {
	out := make(Payload, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["project_id"] = projectID
	return out
}
