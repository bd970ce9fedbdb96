package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"adscontrol-backend-go/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const contentColumns = `id, project_id, identifier, type, reach, engagement, amount_spent, start_date, end_date,
followers_before, followers_after, thru_play, frequency, cpm,
retention_25, retention_50, retention_75, retention_95, retention_100, created_at, updated_at`

const campaignColumns = `id, project_id, name, type, objective, total_engagement, total_reach, total_thru_play,
average_frequency, total_spend, retention_25, retention_50, retention_75, retention_95, retention_100,
start_date, end_date, created_at, updated_at`

// Postgres persists entities through sqlx on the pgx stdlib driver.
type Postgres struct {
	DB *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func (p *Postgres) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows := []models.Project{}
	err := p.DB.SelectContext(ctx, &rows, `
SELECT id, name, description, monthly_spend_projection, created_at, updated_at
FROM projects
ORDER BY created_at ASC, id ASC
`)
	return rows, err
}

func (p *Postgres) GetProject(ctx context.Context, id string) (models.Project, error) {
	var row models.Project
	err := p.DB.GetContext(ctx, &row, `
SELECT id, name, description, monthly_spend_projection, created_at, updated_at
FROM projects
WHERE id = $1
`, id)
	return row, notFound(err)
}

func (p *Postgres) CreateProject(ctx context.Context, row models.Project) error {
	_, err := p.DB.NamedExecContext(ctx, `
INSERT INTO projects (id, name, description, monthly_spend_projection, created_at, updated_at)
VALUES (:id, :name, :description, :monthly_spend_projection, :created_at, :updated_at)
`, row)
	return err
}

func (p *Postgres) UpdateProject(ctx context.Context, row models.Project) error {
	res, err := p.DB.NamedExecContext(ctx, `
UPDATE projects
SET name = :name, description = :description, monthly_spend_projection = :monthly_spend_projection, updated_at = :updated_at
WHERE id = :id
`, row)
	return affected(res, err)
}

func (p *Postgres) DeleteProject(ctx context.Context, id string) error {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrConflict
	}
	return affected(res, err)
}

func (p *Postgres) ProjectHasChildren(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := p.DB.GetContext(ctx, &exists, `
SELECT EXISTS(SELECT 1 FROM contents WHERE project_id = $1)
    OR EXISTS(SELECT 1 FROM campaigns WHERE project_id = $1)
`, id)
	return exists, err
}

func (p *Postgres) ListContents(ctx context.Context, f models.Filter) ([]models.Content, error) {
	where, args := filterClause(f)
	rows := []models.Content{}
	err := p.DB.SelectContext(ctx, &rows, "SELECT "+contentColumns+" FROM contents "+where+" ORDER BY created_at ASC, id ASC", args...)
	return rows, err
}

func (p *Postgres) GetContent(ctx context.Context, id string) (models.Content, error) {
	var row models.Content
	err := p.DB.GetContext(ctx, &row, "SELECT "+contentColumns+" FROM contents WHERE id = $1", id)
	return row, notFound(err)
}

func (p *Postgres) CreateContent(ctx context.Context, row models.Content) error {
	_, err := p.DB.NamedExecContext(ctx, `
INSERT INTO contents (`+contentColumns+`)
VALUES (:id, :project_id, :identifier, :type, :reach, :engagement, :amount_spent, :start_date, :end_date,
:followers_before, :followers_after, :thru_play, :frequency, :cpm,
:retention_25, :retention_50, :retention_75, :retention_95, :retention_100, :created_at, :updated_at)
`, row)
	return err
}

func (p *Postgres) UpdateContent(ctx context.Context, row models.Content) error {
	res, err := p.DB.NamedExecContext(ctx, `
UPDATE contents
SET project_id = :project_id, identifier = :identifier, type = :type, reach = :reach, engagement = :engagement, amount_spent = :amount_spent,
    start_date = :start_date, end_date = :end_date, followers_before = :followers_before, followers_after = :followers_after,
    thru_play = :thru_play, frequency = :frequency, cpm = :cpm,
    retention_25 = :retention_25, retention_50 = :retention_50, retention_75 = :retention_75,
    retention_95 = :retention_95, retention_100 = :retention_100, updated_at = :updated_at
WHERE id = :id
`, row)
	return affected(res, err)
}

func (p *Postgres) DeleteContent(ctx context.Context, id string) error {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id)
	return affected(res, err)
}

func (p *Postgres) ListCampaigns(ctx context.Context, f models.Filter) ([]models.Campaign, error) {
	where, args := filterClause(f)
	rows := []models.Campaign{}
	err := p.DB.SelectContext(ctx, &rows, "SELECT "+campaignColumns+" FROM campaigns "+where+" ORDER BY created_at ASC, id ASC", args...)
	return rows, err
}

func (p *Postgres) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	var row models.Campaign
	err := p.DB.GetContext(ctx, &row, "SELECT "+campaignColumns+" FROM campaigns WHERE id = $1", id)
	return row, notFound(err)
}

func (p *Postgres) CreateCampaign(ctx context.Context, row models.Campaign) error {
	_, err := p.DB.NamedExecContext(ctx, `
INSERT INTO campaigns (`+campaignColumns+`)
VALUES (:id, :project_id, :name, :type, :objective, :total_engagement, :total_reach, :total_thru_play,
:average_frequency, :total_spend, :retention_25, :retention_50, :retention_75, :retention_95, :retention_100,
:start_date, :end_date, :created_at, :updated_at)
`, row)
	return err
}

func (p *Postgres) UpdateCampaign(ctx context.Context, row models.Campaign) error {
	res, err := p.DB.NamedExecContext(ctx, `
UPDATE campaigns
SET project_id = :project_id, name = :name, type = :type, objective = :objective, total_engagement = :total_engagement,
    total_reach = :total_reach, total_thru_play = :total_thru_play, average_frequency = :average_frequency,
    total_spend = :total_spend, retention_25 = :retention_25, retention_50 = :retention_50,
    retention_75 = :retention_75, retention_95 = :retention_95, retention_100 = :retention_100,
    start_date = :start_date, end_date = :end_date, updated_at = :updated_at
WHERE id = :id
`, row)
	return affected(res, err)
}

func (p *Postgres) DeleteCampaign(ctx context.Context, id string) error {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return affected(res, err)
}

func (p *Postgres) LinkContent(ctx context.Context, link models.CampaignContent) error {
	var exists bool
	if err := p.DB.GetContext(ctx, &exists, `
SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1)
   AND EXISTS(SELECT 1 FROM contents WHERE id = $2)
`, link.CampaignID, link.ContentID); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	_, err := p.DB.ExecContext(ctx, `
INSERT INTO campaign_contents (campaign_id, content_id, created_at)
VALUES ($1,$2,$3)
ON CONFLICT (campaign_id, content_id) DO NOTHING
`, link.CampaignID, link.ContentID, link.CreatedAt)
	return err
}

func (p *Postgres) UnlinkContent(ctx context.Context, campaignID, contentID string) error {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM campaign_contents WHERE campaign_id = $1 AND content_id = $2`, campaignID, contentID)
	return affected(res, err)
}

func (p *Postgres) ListCampaignContents(ctx context.Context, campaignID string) ([]models.Content, error) {
	if _, err := p.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	rows := []models.Content{}
	err := p.DB.SelectContext(ctx, &rows, `
SELECT `+contentColumns+`
FROM contents
WHERE id IN (SELECT content_id FROM campaign_contents WHERE campaign_id = $1)
ORDER BY created_at ASC, id ASC
`, campaignID)
	return rows, err
}

func (p *Postgres) ContentLinked(ctx context.Context, contentID string) (bool, error) {
	var exists bool
	err := p.DB.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM campaign_contents WHERE content_id = $1)`, contentID)
	return exists, err
}

func filterClause(f models.Filter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}
	if id := strings.TrimSpace(f.ProjectID); id != "" {
		args = append(args, id)
		clauses = append(clauses, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isForeignKeyViolation reports SQLSTATE 23503, raised when a delete would orphan referencing rows.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
