package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentsFixture() []Content {
	return []Content{
		{ID: "1", ProjectID: "p1", Identifier: "a", Type: TypeC1},
		{ID: "2", ProjectID: "p1", Identifier: "b", Type: TypeC2},
		{ID: "3", ProjectID: "p2", Identifier: "c", Type: TypeC1},
		{ID: "4", ProjectID: "p1", Identifier: "d", Type: TypeC2},
		{ID: "5", ProjectID: "p2", Identifier: "e", Type: TypeC1},
	}
}

func TestApplyByTypeKeepsOrder(t *testing.T) {
	items := contentsFixture()
	got := Apply(items, Filter{Type: TypeC1})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "3", "5"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Len(t, items, 5)
}

func TestApplyEmptyFilterMatchesAll(t *testing.T) {
	items := contentsFixture()
	got := Apply(items, Filter{})
	assert.Equal(t, items, got)
}

func TestApplyCombinedPredicates(t *testing.T) {
	got := Apply(contentsFixture(), Filter{ProjectID: "p1", Type: TypeC2})
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestApplyCampaigns(t *testing.T) {
	campaigns := []Campaign{
		{ID: "x", ProjectID: "p1", Type: TypeC2},
		{ID: "y", ProjectID: "p2", Type: TypeC4},
	}
	got := Apply(campaigns, Filter{ProjectID: "p2"})
	require.Len(t, got, 1)
	assert.Equal(t, "y", got[0].ID)
}

func TestContentTypeHelpers(t *testing.T) {
	assert.True(t, TypeC3.Valid())
	assert.False(t, ContentType("C5").Valid())
	assert.False(t, TypeC1.Nurture())
	assert.True(t, TypeC4.Nurture())

	info, ok := LookupType(TypeC1)
	require.True(t, ok)
	assert.Equal(t, "cost_per_follower", info.PrimaryKPI)
	assert.Len(t, AllTypeInfo(), 4)
}
