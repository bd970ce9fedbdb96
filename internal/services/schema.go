package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"adscontrol-backend-go/internal/models"
)

const DateLayout = "2006-01-02"

// Payload is a decoded JSON object as received from a client.
type Payload map[string]interface{}

// field binds one payload key to a setter on T.
type field[T any] struct {
	key string
	set func(dst *T, raw interface{}) error
}

// schema declares every writable field of an entity once. Create and update
// both go through apply; update simply sends fewer keys.
type schema[T any] []field[T]

func (s schema[T]) apply(dst *T, payload Payload) error {
	for _, f := range s {
		raw, ok := payload[f.key]
		if !ok {
			continue
		}
		if err := f.set(dst, raw); err != nil {
			return err
		}
	}
	return nil
}

func stringField[T any](key string, ptr func(*T) *string) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		*ptr(dst) = strings.TrimSpace(cast.ToString(raw))
		return nil
	}}
}

func optionalStringField[T any](key string, ptr func(*T) **string) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		value := strings.TrimSpace(cast.ToString(raw))
		if value == "" {
			*ptr(dst) = nil
			return nil
		}
		*ptr(dst) = &value
		return nil
	}}
}

func typeField[T any](key string, ptr func(*T) *models.ContentType) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		*ptr(dst) = models.ContentType(strings.ToUpper(strings.TrimSpace(cast.ToString(raw))))
		return nil
	}}
}

// Unparseable numbers coerce to zero.
func intField[T any](key string, ptr func(*T) *int64) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		*ptr(dst) = toInt(raw)
		return nil
	}}
}

func floatField[T any](key string, ptr func(*T) *float64) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		*ptr(dst) = toFloat(raw)
		return nil
	}}
}

func dateField[T any](key string, ptr func(*T) **time.Time) field[T] {
	return field[T]{key: key, set: func(dst *T, raw interface{}) error {
		value, err := parseDate(raw)
		if err != nil {
			return ErrBadRequest(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", key))
		}
		*ptr(dst) = value
		return nil
	}}
}

// Strings are read as base-10 decimals; "010" is ten, "0x10" is not a number.
func toInt(raw interface{}) int64 {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if value, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value
		}
		return int64(toFloat(s))
	}
	if value, err := cast.ToInt64E(raw); err == nil {
		return value
	}
	// 12.0 and friends.
	return int64(toFloat(raw))
}

func toFloat(raw interface{}) float64 {
	var value float64
	var err error
	if s, ok := raw.(string); ok {
		value, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
	} else {
		value, err = cast.ToFloat64E(raw)
	}
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func parseDate(raw interface{}) (*time.Time, error) {
	value := strings.TrimSpace(cast.ToString(raw))
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func retentionFields[T any](ret func(*T) *models.Retention) []field[T] {
	return []field[T]{
		floatField("retention_25_pct", func(t *T) *float64 { return &ret(t).P25 }),
		floatField("retention_50_pct", func(t *T) *float64 { return &ret(t).P50 }),
		floatField("retention_75_pct", func(t *T) *float64 { return &ret(t).P75 }),
		floatField("retention_95_pct", func(t *T) *float64 { return &ret(t).P95 }),
		floatField("retention_100_pct", func(t *T) *float64 { return &ret(t).P100 }),
	}
}

var projectSchema = schema[models.Project]{
	stringField("name", func(p *models.Project) *string { return &p.Name }),
	optionalStringField("description", func(p *models.Project) **string { return &p.Description }),
	floatField("monthly_spend_projection", func(p *models.Project) *float64 { return &p.MonthlySpendProjection }),
}

var contentSchema = append(schema[models.Content]{
	stringField("project_id", func(c *models.Content) *string { return &c.ProjectID }),
	stringField("identifier", func(c *models.Content) *string { return &c.Identifier }),
	typeField("type", func(c *models.Content) *models.ContentType { return &c.Type }),
	intField("reach", func(c *models.Content) *int64 { return &c.Reach }),
	intField("engagement", func(c *models.Content) *int64 { return &c.Engagement }),
	floatField("amount_spent", func(c *models.Content) *float64 { return &c.AmountSpent }),
	dateField("start_date", func(c *models.Content) **time.Time { return &c.StartDate }),
	dateField("end_date", func(c *models.Content) **time.Time { return &c.EndDate }),
	intField("followers_before", func(c *models.Content) *int64 { return &c.FollowersBefore }),
	intField("followers_after", func(c *models.Content) *int64 { return &c.FollowersAfter }),
	intField("thru_play_count", func(c *models.Content) *int64 { return &c.ThruPlay }),
	floatField("frequency", func(c *models.Content) *float64 { return &c.Frequency }),
	floatField("cpm", func(c *models.Content) *float64 { return &c.CPM }),
}, retentionFields(func(c *models.Content) *models.Retention { return &c.Retention })...)

var campaignSchema = append(schema[models.Campaign]{
	stringField("project_id", func(c *models.Campaign) *string { return &c.ProjectID }),
	stringField("name", func(c *models.Campaign) *string { return &c.Name }),
	typeField("type", func(c *models.Campaign) *models.ContentType { return &c.Type }),
	optionalStringField("objective", func(c *models.Campaign) **string { return &c.Objective }),
	intField("total_engagement", func(c *models.Campaign) *int64 { return &c.TotalEngagement }),
	intField("total_reach", func(c *models.Campaign) *int64 { return &c.TotalReach }),
	intField("total_thru_play", func(c *models.Campaign) *int64 { return &c.TotalThruPlay }),
	floatField("average_frequency", func(c *models.Campaign) *float64 { return &c.AverageFrequency }),
	floatField("total_spend", func(c *models.Campaign) *float64 { return &c.TotalSpend }),
	dateField("start_date", func(c *models.Campaign) **time.Time { return &c.StartDate }),
	dateField("end_date", func(c *models.Campaign) **time.Time { return &c.EndDate }),
}, retentionFields(func(c *models.Campaign) *models.Retention { return &c.Retention })...)
