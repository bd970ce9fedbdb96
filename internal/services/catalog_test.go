package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adscontrol-backend-go/internal/models"
	"adscontrol-backend-go/internal/store"
)

func newCatalog(t *testing.T) (*Catalog, store.Store) {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { _ = st.Close() })
	return NewCatalog(st), st
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var svcErr ServiceError
	require.True(t, errors.As(err, &svcErr), "expected ServiceError, got %v", err)
	assert.Equal(t, status, svcErr.Status)
}

func TestCatalogProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)

	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer", "monthly_spend_projection": "5000"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 5000.0, p.MonthlySpendProjection)

	updated, err := catalog.UpdateProject(ctx, p.ID, Payload{"description": "Q1"})
	require.NoError(t, err)
	assert.Equal(t, "Summer", updated.Name)
	require.NotNil(t, updated.Description)

	items, err := catalog.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, catalog.DeleteProject(ctx, p.ID))
	_, err = catalog.GetProject(ctx, p.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestCatalogCreateProjectRequiresName(t *testing.T) {
	catalog, _ := newCatalog(t)
	_, err := catalog.CreateProject(context.Background(), Payload{"name": "   "})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCatalogFailedUpdateLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)

	_, err = catalog.UpdateProject(ctx, p.ID, Payload{"name": ""})
	requireStatus(t, err, http.StatusBadRequest)

	got, err := catalog.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer", got.Name)
}

func TestCatalogUnknownIDs(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	_, err := catalog.UpdateProject(ctx, "missing", Payload{"name": "x"})
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, catalog.DeleteProject(ctx, "missing"), http.StatusNotFound)
	requireStatus(t, catalog.DeleteContent(ctx, "missing"), http.StatusNotFound)
	requireStatus(t, catalog.DeleteCampaign(ctx, "missing"), http.StatusNotFound)
	_, err = catalog.UpdateCampaign(ctx, "missing", Payload{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCatalogDeleteProjectWithChildrenConflicts(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)
	c, err := catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "Post", "type": "C1"})
	require.NoError(t, err)

	requireStatus(t, catalog.DeleteProject(ctx, p.ID), http.StatusConflict)

	require.NoError(t, catalog.DeleteContent(ctx, c.ID))
	require.NoError(t, catalog.DeleteProject(ctx, p.ID))
}

func TestCatalogContentValidation(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)

	_, err = catalog.CreateContent(ctx, Payload{"project_id": p.ID, "type": "C1"})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "x", "type": "C7"})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = catalog.CreateContent(ctx, Payload{"project_id": "nope", "identifier": "x", "type": "C1"})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "x", "type": "C1", "reach": -5})
	requireStatus(t, err, http.StatusBadRequest)

	items, err := catalog.ListContents(ctx, models.Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogContentUpdateAndFilter(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)
	a, err := catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "A", "type": "C1"})
	require.NoError(t, err)
	_, err = catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "B", "type": "C2"})
	require.NoError(t, err)

	updated, err := catalog.UpdateContent(ctx, a.ID, Payload{"amount_spent": 120, "start_date": "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.AmountSpent)
	assert.Equal(t, "A", updated.Identifier)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	c1, err := catalog.ListContents(ctx, models.Filter{Type: models.TypeC1})
	require.NoError(t, err)
	require.Len(t, c1, 1)
	assert.Equal(t, "A", c1[0].Identifier)
}

func TestCatalogCampaignRejectsC1(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)

	_, err = catalog.CreateCampaign(ctx, Payload{"project_id": p.ID, "name": "Leads", "type": "C1"})
	requireStatus(t, err, http.StatusBadRequest)

	camp, err := catalog.CreateCampaign(ctx, Payload{"project_id": p.ID, "name": "Leads", "type": "C2", "objective": "Engagement"})
	require.NoError(t, err)
	_, err = catalog.UpdateCampaign(ctx, camp.ID, Payload{"type": "C1"})
	requireStatus(t, err, http.StatusBadRequest)

	got, err := catalog.GetCampaign(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeC2, got.Type)
}

func TestCatalogCampaignLinks(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)
	other, err := catalog.CreateProject(ctx, Payload{"name": "Other"})
	require.NoError(t, err)
	camp, err := catalog.CreateCampaign(ctx, Payload{"project_id": p.ID, "name": "Leads", "type": "C2"})
	require.NoError(t, err)
	own, err := catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "Webinar", "type": "C2"})
	require.NoError(t, err)
	foreign, err := catalog.CreateContent(ctx, Payload{"project_id": other.ID, "identifier": "Elsewhere", "type": "C2"})
	require.NoError(t, err)

	_, err = catalog.LinkContent(ctx, camp.ID, foreign.ID)
	requireStatus(t, err, http.StatusBadRequest)
	_, err = catalog.LinkContent(ctx, camp.ID, "missing")
	requireStatus(t, err, http.StatusNotFound)

	link, err := catalog.LinkContent(ctx, camp.ID, own.ID)
	require.NoError(t, err)
	assert.Equal(t, camp.ID, link.CampaignID)
	_, err = catalog.LinkContent(ctx, camp.ID, own.ID)
	require.NoError(t, err)

	items, err := catalog.CampaignContents(ctx, camp.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Webinar", items[0].Identifier)

	require.NoError(t, catalog.UnlinkContent(ctx, camp.ID, own.ID))
	requireStatus(t, catalog.UnlinkContent(ctx, camp.ID, own.ID), http.StatusNotFound)
	_, err = catalog.CampaignContents(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestCatalogMoveBlockedWhileLinked(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog(t)
	p, err := catalog.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)
	other, err := catalog.CreateProject(ctx, Payload{"name": "Other"})
	require.NoError(t, err)
	camp, err := catalog.CreateCampaign(ctx, Payload{"project_id": p.ID, "name": "Leads", "type": "C2"})
	require.NoError(t, err)
	content, err := catalog.CreateContent(ctx, Payload{"project_id": p.ID, "identifier": "Webinar", "type": "C2"})
	require.NoError(t, err)
	_, err = catalog.LinkContent(ctx, camp.ID, content.ID)
	require.NoError(t, err)

	_, err = catalog.UpdateContent(ctx, content.ID, Payload{"project_id": other.ID})
	requireStatus(t, err, http.StatusConflict)
	_, err = catalog.UpdateCampaign(ctx, camp.ID, Payload{"project_id": other.ID})
	requireStatus(t, err, http.StatusConflict)

	gotContent, err := catalog.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, gotContent.ProjectID)
	gotCampaign, err := catalog.GetCampaign(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, gotCampaign.ProjectID)
	items, err := catalog.CampaignContents(ctx, camp.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Same-project updates stay allowed while linked.
	_, err = catalog.UpdateContent(ctx, content.ID, Payload{"project_id": p.ID, "reach": 900})
	require.NoError(t, err)

	require.NoError(t, catalog.UnlinkContent(ctx, camp.ID, content.ID))
	moved, err := catalog.UpdateContent(ctx, content.ID, Payload{"project_id": other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ProjectID)
	movedCampaign, err := catalog.UpdateCampaign(ctx, camp.ID, Payload{"project_id": other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, movedCampaign.ProjectID)
}

// staleChildren reports no children, as a check racing a concurrent insert would.
type staleChildren struct {
	store.Store
}

func (staleChildren) ProjectHasChildren(context.Context, string) (bool, error) {
	return false, nil
}

func TestCatalogDeleteProjectConflictFromStore(t *testing.T) {
	ctx := context.Background()
	_, st := newCatalog(t)
	seed := NewCatalog(st)
	p, err := seed.CreateProject(ctx, Payload{"name": "Summer"})
	require.NoError(t, err)
	_, err = seed.CreateCampaign(ctx, Payload{"project_id": p.ID, "name": "Leads", "type": "C2"})
	require.NoError(t, err)

	catalog := NewCatalog(staleChildren{st})
	requireStatus(t, catalog.DeleteProject(ctx, p.ID), http.StatusConflict)
	_, err = catalog.GetProject(ctx, p.ID)
	require.NoError(t, err)
}
