package store

import (
	"context"
	"sync"

	"adscontrol-backend-go/internal/models"
)

// table keeps rows keyed by id while remembering insertion order.
type table[T any] struct {
	order []string
	rows  map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, key := range t.order {
		if key == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) all() []T {
	items := make([]T, 0, len(t.order))
	for _, id := range t.order {
		items = append(items, t.rows[id])
	}
	return items
}

// Memory is the default store. It lives for the lifetime of the process.
type Memory struct {
	mu sync.RWMutex

	projects  *table[models.Project]
	contents  *table[models.Content]
	campaigns *table[models.Campaign]
	links     *table[models.CampaignContent]
}

func NewMemory() *Memory {
	return &Memory{
		projects:  newTable[models.Project](),
		contents:  newTable[models.Content](),
		campaigns: newTable[models.Campaign](),
		links:     newTable[models.CampaignContent](),
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = newTable[models.Project]()
	m.contents = newTable[models.Content]()
	m.campaigns = newTable[models.Campaign]()
	m.links = newTable[models.CampaignContent]()
	return nil
}

func (m *Memory) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.projects.all(), nil
}

func (m *Memory) GetProject(_ context.Context, id string) (models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects.get(id)
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) CreateProject(_ context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects.put(p.ID, p)
	return nil
}

func (m *Memory) UpdateProject(_ context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects.get(p.ID); !ok {
		return ErrNotFound
	}
	m.projects.put(p.ID, p)
	return nil
}

func (m *Memory) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects.get(id); !ok {
		return ErrNotFound
	}
	if m.hasChildren(id) {
		return ErrConflict
	}
	m.projects.remove(id)
	return nil
}

func (m *Memory) ProjectHasChildren(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasChildren(id), nil
}

// hasChildren expects m.mu to be held.
func (m *Memory) hasChildren(projectID string) bool {
	f := models.Filter{ProjectID: projectID}
	return len(models.Apply(m.contents.all(), f)) > 0 || len(models.Apply(m.campaigns.all(), f)) > 0
}

func (m *Memory) ListContents(_ context.Context, f models.Filter) ([]models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Apply(m.contents.all(), f), nil
}

func (m *Memory) GetContent(_ context.Context, id string) (models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contents.get(id)
	if !ok {
		return models.Content{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CreateContent(_ context.Context, c models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents.put(c.ID, c)
	return nil
}

func (m *Memory) UpdateContent(_ context.Context, c models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contents.get(c.ID); !ok {
		return ErrNotFound
	}
	m.contents.put(c.ID, c)
	return nil
}

func (m *Memory) DeleteContent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.contents.remove(id) {
		return ErrNotFound
	}
	for _, link := range m.links.all() {
		if link.ContentID == id {
			m.links.remove(linkID(link.CampaignID, link.ContentID))
		}
	}
	return nil
}

func (m *Memory) ListCampaigns(_ context.Context, f models.Filter) ([]models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Apply(m.campaigns.all(), f), nil
}

func (m *Memory) GetCampaign(_ context.Context, id string) (models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.campaigns.get(id)
	if !ok {
		return models.Campaign{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CreateCampaign(_ context.Context, c models.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns.put(c.ID, c)
	return nil
}

func (m *Memory) UpdateCampaign(_ context.Context, c models.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns.get(c.ID); !ok {
		return ErrNotFound
	}
	m.campaigns.put(c.ID, c)
	return nil
}

func (m *Memory) DeleteCampaign(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.campaigns.remove(id) {
		return ErrNotFound
	}
	for _, link := range m.links.all() {
		if link.CampaignID == id {
			m.links.remove(linkID(link.CampaignID, link.ContentID))
		}
	}
	return nil
}

func (m *Memory) LinkContent(_ context.Context, link models.CampaignContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns.get(link.CampaignID); !ok {
		return ErrNotFound
	}
	if _, ok := m.contents.get(link.ContentID); !ok {
		return ErrNotFound
	}
	key := linkID(link.CampaignID, link.ContentID)
	if _, ok := m.links.get(key); ok {
		return nil
	}
	m.links.put(key, link)
	return nil
}

func (m *Memory) UnlinkContent(_ context.Context, campaignID, contentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.links.remove(linkID(campaignID, contentID)) {
		return ErrNotFound
	}
	return nil
}

func (m *Memory) ListCampaignContents(_ context.Context, campaignID string) ([]models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.campaigns.get(campaignID); !ok {
		return nil, ErrNotFound
	}
	items := []models.Content{}
	for _, link := range m.links.all() {
		if link.CampaignID != campaignID {
			continue
		}
		if c, ok := m.contents.get(link.ContentID); ok {
			items = append(items, c)
		}
	}
	return items, nil
}

func (m *Memory) ContentLinked(_ context.Context, contentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, link := range m.links.all() {
		if link.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}

func linkID(campaignID, contentID string) string {
	return campaignID + "/" + contentID
}
