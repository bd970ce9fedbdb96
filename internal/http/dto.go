package httpapi

import (
	"time"

	"adscontrol-backend-go/internal/analytics"
	"adscontrol-backend-go/internal/models"
	"adscontrol-backend-go/internal/services"
)

// ContentDTO renders dates as YYYY-MM-DD; every other field comes from the model.
type ContentDTO struct {
	models.Content
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type CampaignDTO struct {
	models.Campaign
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type RankedCreativeDTO struct {
	Content ContentDTO `json:"content"`
	KPI     *float64   `json:"kpi"`
}

type LinkRequest struct {
	ContentID string `json:"content_id"`
}

type AnalysisRequest struct {
	Scope string `json:"scope"`
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(services.DateLayout)
	return &formatted
}

func toContentDTO(c models.Content) ContentDTO {
	return ContentDTO{Content: c, StartDate: formatDate(c.StartDate), EndDate: formatDate(c.EndDate)}
}

func toContentDTOs(items []models.Content) []ContentDTO {
	out := make([]ContentDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toContentDTO(c))
	}
	return out
}

func toCampaignDTO(c models.Campaign) CampaignDTO {
	return CampaignDTO{Campaign: c, StartDate: formatDate(c.StartDate), EndDate: formatDate(c.EndDate)}
}

func toCampaignDTOs(items []models.Campaign) []CampaignDTO {
	out := make([]CampaignDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toCampaignDTO(c))
	}
	return out
}

func toRankedDTOs(ranked map[models.ContentType][]analytics.RankedCreative) map[models.ContentType][]RankedCreativeDTO {
	out := make(map[models.ContentType][]RankedCreativeDTO, len(ranked))
	for t, items := range ranked {
		list := make([]RankedCreativeDTO, 0, len(items))
		for _, item := range items {
			list = append(list, RankedCreativeDTO{Content: toContentDTO(item.Content), KPI: item.KPI})
		}
		out[t] = list
	}
	return out
}
