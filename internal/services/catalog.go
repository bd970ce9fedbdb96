package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"adscontrol-backend-go/internal/models"
	"adscontrol-backend-go/internal/store"
)

// Catalog owns create/read/update/delete for projects, contents and campaigns.
// Every write goes through the entity schema and the validator before it
// reaches the store, so a failed write leaves the store untouched.
type Catalog struct {
	store store.Store
	now   func() time.Time
}

func NewCatalog(st store.Store) *Catalog {
	return &Catalog{store: st, now: func() time.Time { return time.Now().UTC() }}
}

func (c *Catalog) ListProjects(ctx context.Context) ([]models.Project, error) {
	items, err := c.store.ListProjects(ctx)
	if err != nil {
		return nil, WrapError(err, "list projects")
	}
	return items, nil
}

func (c *Catalog) GetProject(ctx context.Context, id string) (models.Project, error) {
	p, err := c.store.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, storeError(err, "project not found")
	}
	return p, nil
}

func (c *Catalog) CreateProject(ctx context.Context, payload Payload) (models.Project, error) {
	var p models.Project
	if err := projectSchema.apply(&p, payload); err != nil {
		return models.Project{}, err
	}
	if err := validateEntity(p); err != nil {
		return models.Project{}, err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = c.now()
	p.UpdatedAt = p.CreatedAt
	if err := c.store.CreateProject(ctx, p); err != nil {
		return models.Project{}, WrapError(err, "create project")
	}
	log.Ctx(ctx).Debug().Str("project_id", p.ID).Msg("project created")
	return p, nil
}

func (c *Catalog) UpdateProject(ctx context.Context, id string, payload Payload) (models.Project, error) {
	p, err := c.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if err := projectSchema.apply(&p, payload); err != nil {
		return models.Project{}, err
	}
	if err := validateEntity(p); err != nil {
		return models.Project{}, err
	}
	p.UpdatedAt = c.now()
	if err := c.store.UpdateProject(ctx, p); err != nil {
		return models.Project{}, storeError(err, "project not found")
	}
	return p, nil
}

// DeleteProject refuses to orphan contents or campaigns.
func (c *Catalog) DeleteProject(ctx context.Context, id string) error {
	if _, err := c.GetProject(ctx, id); err != nil {
		return err
	}
	busy, err := c.store.ProjectHasChildren(ctx, id)
	if err != nil {
		return WrapError(err, "check project children")
	}
	if busy {
		return ErrConflict(projectBusy)
	}
	// A child may be created between the check and the delete.
	if err := c.store.DeleteProject(ctx, id); errors.Is(err, store.ErrConflict) {
		return ErrConflict(projectBusy)
	} else if err != nil {
		return storeError(err, "project not found")
	}
	return nil
}

const projectBusy = "project still has contents or campaigns"

func (c *Catalog) ListContents(ctx context.Context, f models.Filter) ([]models.Content, error) {
	items, err := c.store.ListContents(ctx, f)
	if err != nil {
		return nil, WrapError(err, "list contents")
	}
	return items, nil
}

func (c *Catalog) GetContent(ctx context.Context, id string) (models.Content, error) {
	item, err := c.store.GetContent(ctx, id)
	if err != nil {
		return models.Content{}, storeError(err, "content not found")
	}
	return item, nil
}

func (c *Catalog) CreateContent(ctx context.Context, payload Payload) (models.Content, error) {
	var item models.Content
	if err := contentSchema.apply(&item, payload); err != nil {
		return models.Content{}, err
	}
	if err := c.checkContent(ctx, item); err != nil {
		return models.Content{}, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = c.now()
	item.UpdatedAt = item.CreatedAt
	if err := c.store.CreateContent(ctx, item); err != nil {
		return models.Content{}, WrapError(err, "create content")
	}
	return item, nil
}

func (c *Catalog) UpdateContent(ctx context.Context, id string, payload Payload) (models.Content, error) {
	item, err := c.GetContent(ctx, id)
	if err != nil {
		return models.Content{}, err
	}
	owner := item.ProjectID
	if err := contentSchema.apply(&item, payload); err != nil {
		return models.Content{}, err
	}
	if err := c.checkContent(ctx, item); err != nil {
		return models.Content{}, err
	}
	if item.ProjectID != owner {
		linked, err := c.store.ContentLinked(ctx, id)
		if err != nil {
			return models.Content{}, WrapError(err, "check content links")
		}
		if linked {
			return models.Content{}, ErrConflict("content is linked to campaigns; unlink it before moving it to another project")
		}
	}
	item.UpdatedAt = c.now()
	if err := c.store.UpdateContent(ctx, item); err != nil {
		return models.Content{}, storeError(err, "content not found")
	}
	return item, nil
}

func (c *Catalog) DeleteContent(ctx context.Context, id string) error {
	return storeError(c.store.DeleteContent(ctx, id), "content not found")
}

func (c *Catalog) checkContent(ctx context.Context, item models.Content) error {
	if err := validateEntity(item); err != nil {
		return err
	}
	return c.checkOwner(ctx, item.ProjectID)
}

func (c *Catalog) ListCampaigns(ctx context.Context, f models.Filter) ([]models.Campaign, error) {
	items, err := c.store.ListCampaigns(ctx, f)
	if err != nil {
		return nil, WrapError(err, "list campaigns")
	}
	return items, nil
}

func (c *Catalog) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	item, err := c.store.GetCampaign(ctx, id)
	if err != nil {
		return models.Campaign{}, storeError(err, "campaign not found")
	}
	return item, nil
}

func (c *Catalog) CreateCampaign(ctx context.Context, payload Payload) (models.Campaign, error) {
	var item models.Campaign
	if err := campaignSchema.apply(&item, payload); err != nil {
		return models.Campaign{}, err
	}
	if err := c.checkCampaign(ctx, item); err != nil {
		return models.Campaign{}, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = c.now()
	item.UpdatedAt = item.CreatedAt
	if err := c.store.CreateCampaign(ctx, item); err != nil {
		return models.Campaign{}, WrapError(err, "create campaign")
	}
	return item, nil
}

func (c *Catalog) UpdateCampaign(ctx context.Context, id string, payload Payload) (models.Campaign, error) {
	item, err := c.GetCampaign(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	owner := item.ProjectID
	if err := campaignSchema.apply(&item, payload); err != nil {
		return models.Campaign{}, err
	}
	if err := c.checkCampaign(ctx, item); err != nil {
		return models.Campaign{}, err
	}
	if item.ProjectID != owner {
		linked, err := c.store.ListCampaignContents(ctx, id)
		if err != nil {
			return models.Campaign{}, storeError(err, "campaign not found")
		}
		if len(linked) > 0 {
			return models.Campaign{}, ErrConflict("campaign has linked contents; unlink them before moving it to another project")
		}
	}
	item.UpdatedAt = c.now()
	if err := c.store.UpdateCampaign(ctx, item); err != nil {
		return models.Campaign{}, storeError(err, "campaign not found")
	}
	return item, nil
}

func (c *Catalog) DeleteCampaign(ctx context.Context, id string) error {
	return storeError(c.store.DeleteCampaign(ctx, id), "campaign not found")
}

func (c *Catalog) checkCampaign(ctx context.Context, item models.Campaign) error {
	if item.Type == models.TypeC1 {
		return ErrBadRequest("campaigns cannot use type C1; follower acquisition is content-only")
	}
	if err := validateEntity(item); err != nil {
		return err
	}
	return c.checkOwner(ctx, item.ProjectID)
}

func (c *Catalog) checkOwner(ctx context.Context, projectID string) error {
	_, err := c.store.GetProject(ctx, projectID)
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrBadRequest("project_id references an unknown project")
	}
	return WrapError(err, "load project")
}

// LinkContent attaches a content to a campaign of the same project. Linking twice is a no-op.
func (c *Catalog) LinkContent(ctx context.Context, campaignID, contentID string) (models.CampaignContent, error) {
	campaign, err := c.GetCampaign(ctx, campaignID)
	if err != nil {
		return models.CampaignContent{}, err
	}
	content, err := c.GetContent(ctx, contentID)
	if err != nil {
		return models.CampaignContent{}, err
	}
	if content.ProjectID != campaign.ProjectID {
		return models.CampaignContent{}, ErrBadRequest("content belongs to a different project")
	}
	link := models.CampaignContent{CampaignID: campaignID, ContentID: contentID, CreatedAt: c.now()}
	if err := c.store.LinkContent(ctx, link); err != nil {
		return models.CampaignContent{}, storeError(err, "campaign or content not found")
	}
	return link, nil
}

func (c *Catalog) UnlinkContent(ctx context.Context, campaignID, contentID string) error {
	return storeError(c.store.UnlinkContent(ctx, campaignID, contentID), "link not found")
}

func (c *Catalog) CampaignContents(ctx context.Context, campaignID string) ([]models.Content, error) {
	items, err := c.store.ListCampaignContents(ctx, campaignID)
	if err != nil {
		return nil, storeError(err, "campaign not found")
	}
	return items, nil
}
