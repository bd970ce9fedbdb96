// Package store holds the entity collections behind a repository interface.
package store

import (
	"context"
	"errors"

	"adscontrol-backend-go/internal/models"
)

var (
	ErrNotFound = errors.New("store: not found")
	// ErrConflict reports a write refused because other rows still depend on the target.
	ErrConflict = errors.New("store: conflict")
)

// Store is the CRUD surface shared by the in-memory and Postgres backends.
// List methods return items in creation order.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, p models.Project) error
	UpdateProject(ctx context.Context, p models.Project) error
	// DeleteProject fails with ErrConflict while contents or campaigns reference the project.
	DeleteProject(ctx context.Context, id string) error
	ProjectHasChildren(ctx context.Context, id string) (bool, error)

	ListContents(ctx context.Context, f models.Filter) ([]models.Content, error)
	GetContent(ctx context.Context, id string) (models.Content, error)
	CreateContent(ctx context.Context, c models.Content) error
	UpdateContent(ctx context.Context, c models.Content) error
	DeleteContent(ctx context.Context, id string) error

	ListCampaigns(ctx context.Context, f models.Filter) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (models.Campaign, error)
	CreateCampaign(ctx context.Context, c models.Campaign) error
	UpdateCampaign(ctx context.Context, c models.Campaign) error
	DeleteCampaign(ctx context.Context, id string) error

	LinkContent(ctx context.Context, link models.CampaignContent) error
	UnlinkContent(ctx context.Context, campaignID, contentID string) error
	ListCampaignContents(ctx context.Context, campaignID string) ([]models.Content, error)
	ContentLinked(ctx context.Context, contentID string) (bool, error)

	Close() error
}
