package models

import "time"

type ContentType string

const (
	TypeC1 ContentType = "C1"
	TypeC2 ContentType = "C2"
	TypeC3 ContentType = "C3"
	TypeC4 ContentType = "C4"
)

// ContentTypes lists every funnel stage in display order.
var ContentTypes = []ContentType{TypeC1, TypeC2, TypeC3, TypeC4}

// CampaignTypes lists the stages a campaign can run; follower acquisition is content-only.
var CampaignTypes = []ContentType{TypeC2, TypeC3, TypeC4}

func (t ContentType) Valid() bool {
	switch t {
	case TypeC1, TypeC2, TypeC3, TypeC4:
		return true
	}
	return false
}

// Nurture reports whether the type is one of the C2-C4 nurture stages.
func (t ContentType) Nurture() bool {
	return t == TypeC2 || t == TypeC3 || t == TypeC4
}

type Project struct {
	ID                     string    `db:"id" json:"id"`
	Name                   string    `db:"name" json:"name" validate:"required"`
	Description            *string   `db:"description" json:"description"`
	MonthlySpendProjection float64   `db:"monthly_spend_projection" json:"monthly_spend_projection" validate:"gte=0"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

// Retention holds the viewer counts at each video-progress checkpoint.
type Retention struct {
	P25  float64 `db:"retention_25" json:"retention_25_pct"`
	P50  float64 `db:"retention_50" json:"retention_50_pct"`
	P75  float64 `db:"retention_75" json:"retention_75_pct"`
	P95  float64 `db:"retention_95" json:"retention_95_pct"`
	P100 float64 `db:"retention_100" json:"retention_100_pct"`
}

type Content struct {
	ID          string      `db:"id" json:"id"`
	ProjectID   string      `db:"project_id" json:"project_id" validate:"required"`
	Identifier  string      `db:"identifier" json:"identifier" validate:"required"`
	Type        ContentType `db:"type" json:"type" validate:"required,oneof=C1 C2 C3 C4"`
	Reach       int64       `db:"reach" json:"reach" validate:"gte=0"`
	Engagement  int64       `db:"engagement" json:"engagement" validate:"gte=0"`
	AmountSpent float64     `db:"amount_spent" json:"amount_spent" validate:"gte=0"`
	StartDate   *time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time  `db:"end_date" json:"end_date"`

	FollowersBefore int64 `db:"followers_before" json:"followers_before" validate:"gte=0"`
	FollowersAfter  int64 `db:"followers_after" json:"followers_after" validate:"gte=0"`

	ThruPlay  int64   `db:"thru_play" json:"thru_play_count" validate:"gte=0"`
	Frequency float64 `db:"frequency" json:"frequency" validate:"gte=0"`
	CPM       float64 `db:"cpm" json:"cpm" validate:"gte=0"`
	Retention

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Campaign struct {
	ID               string      `db:"id" json:"id"`
	ProjectID        string      `db:"project_id" json:"project_id" validate:"required"`
	Name             string      `db:"name" json:"name" validate:"required"`
	Type             ContentType `db:"type" json:"type" validate:"required,oneof=C2 C3 C4"`
	Objective        *string     `db:"objective" json:"objective"`
	TotalEngagement  int64       `db:"total_engagement" json:"total_engagement" validate:"gte=0"`
	TotalReach       int64       `db:"total_reach" json:"total_reach" validate:"gte=0"`
	TotalThruPlay    int64       `db:"total_thru_play" json:"total_thru_play" validate:"gte=0"`
	AverageFrequency float64     `db:"average_frequency" json:"average_frequency" validate:"gte=0"`
	TotalSpend       float64     `db:"total_spend" json:"total_spend" validate:"gte=0"`
	Retention
	StartDate *time.Time `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CampaignContent struct {
	CampaignID string    `db:"campaign_id" json:"campaign_id"`
	ContentID  string    `db:"content_id" json:"content_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
