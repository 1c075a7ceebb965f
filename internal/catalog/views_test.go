package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/models"
)

func TestNewEvolutionViewSingleStage(t *testing.T) {
	view := NewEvolutionView(dex.Stages{{{Name: "tauros", ID: 128}}})

	assert.False(t, view.Evolves)
	require.Len(t, view.Steps, 1)
	assert.Empty(t, view.Steps[0].Condition)
}

func TestNewMovesViewTabs(t *testing.T) {
	slots := []models.MoveSlot{
		{Move: models.NamedResource{Name: "tackle"}, VersionGroupDetails: []models.VersionGroupDetail{{LevelLearnedAt: 1, MoveLearnMethod: models.NamedResource{Name: "level-up"}}}},
		{Move: models.NamedResource{Name: "toxic"}, VersionGroupDetails: []models.VersionGroupDetail{{MoveLearnMethod: models.NamedResource{Name: "machine"}}}},
	}

	view := NewMovesView(slots, "nonsense", false)

	assert.Equal(t, dex.MethodAll, view.Filter)
	var keys []string
	for _, tab := range view.Tabs {
		keys = append(keys, tab.Key)
		assert.Equal(t, tab.Key == dex.MethodAll, tab.Active, tab.Key)
	}
	assert.Equal(t, dex.MoveFilters, keys)
	assert.False(t, view.HasMore())

	counts := make(map[string]int)
	for _, tab := range view.Tabs {
		counts[tab.Key] = tab.Count
	}
	assert.Equal(t, map[string]int{
		dex.MethodAll:     2,
		dex.MethodLevelUp: 1,
		dex.MethodMachine: 1,
		dex.MethodEgg:     0,
		dex.MethodTutor:   0,
	}, counts)
}

func TestNewMovesViewWithoutMoves(t *testing.T) {
	view := NewMovesView(nil, dex.MethodEgg, false)

	assert.Empty(t, view.Tabs)
	assert.Empty(t, view.Items)
	assert.Equal(t, dex.MethodEgg, view.Filter)
}

func TestNewSpritesViewTabs(t *testing.T) {
	var s models.Sprites
	s.FrontDefault = "f.png"
	s.Other.Showdown.FrontDefault = "f.gif"

	view := NewSpritesView(s, dex.CategoryAnimated)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "f.gif", view.Items[0].URL)
	require.Len(t, view.Tabs, 3)
	assert.True(t, view.Tabs[2].Active)
	assert.Equal(t, 1, view.Tabs[2].Count)
}
