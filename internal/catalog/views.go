package catalog

import (
	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/models"
)

// DetailOptions carries the detail page's filter state
type DetailOptions struct {
	MoveFilter     string
	AllMoves       bool
	SpriteCategory string
}

// DetailView is everything the detail page renders
type DetailView struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Height    float64           `json:"height_m"`
	Weight    float64           `json:"weight_kg"`
	Hero      dex.Hero          `json:"hero"`
	Types     []string          `json:"types"`
	Stats     []dex.Stat        `json:"stats"`
	Species   *dex.SpeciesInfo  `json:"species,omitempty"`
	Abilities []dex.AbilityInfo `json:"abilities,omitempty"`
	Evolution *EvolutionView    `json:"evolution,omitempty"`
	Moves     MovesView         `json:"moves"`
	Sprites   SpritesView       `json:"sprites"`
}

// EvolutionStep is one stage bucket with the condition that leads into it
type EvolutionStep struct {
	Condition string      `json:"condition,omitempty"`
	Stages    []dex.Stage `json:"stages"`
}

// EvolutionView is the evolution section
type EvolutionView struct {
	Evolves bool            `json:"evolves"`
	Steps   []EvolutionStep `json:"steps"`
}

// NewEvolutionView attaches arrow text to every bucket after the first
func NewEvolutionView(stages dex.Stages) *EvolutionView {
	view := &EvolutionView{Evolves: stages.Evolves()}
	for i, bucket := range stages {
		step := EvolutionStep{Stages: bucket}
		if i > 0 && len(bucket) > 0 {
			step.Condition = dex.ConditionText(bucket[0])
		}
		view.Steps = append(view.Steps, step)
	}
	return view
}

// FilterTab is a filter button with its count
type FilterTab struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// MovesView is the moves section
type MovesView struct {
	Filter   string      `json:"filter"`
	Tabs     []FilterTab `json:"tabs"`
	Items    []dex.Move  `json:"items"`
	Matched  int         `json:"matched"`
	Expanded bool        `json:"expanded"`
}

// HasMore reports whether the collapsed list hides moves
func (v MovesView) HasMore() bool {
	return !v.Expanded && v.Matched > len(v.Items)
}

// NewMovesView reduces, counts, filters and (unless expanded) truncates moves.
// Unknown filters fall back to "all". Every method keeps its tab, with a zero
// count when nothing is learned that way; a Pokemon without moves has none.
func NewMovesView(slots []models.MoveSlot, filter string, expanded bool) MovesView {
	if !dex.IsMoveFilter(filter) {
		filter = dex.MethodAll
	}
	moves := dex.ReduceMoves(slots)
	counts := dex.CountMoves(moves)
	filtered := dex.FilterMoves(moves, filter)

	view := MovesView{
		Filter:   filter,
		Matched:  len(filtered),
		Expanded: expanded,
		Items:    filtered,
	}
	if !expanded && len(filtered) > dex.CollapsedMoves {
		view.Items = filtered[:dex.CollapsedMoves]
	}
	if len(moves) == 0 {
		return view
	}
	for _, key := range dex.MoveFilters {
		view.Tabs = append(view.Tabs, FilterTab{Key: key, Label: dex.MethodLabel(key), Count: counts[key], Active: key == filter})
	}
	return view
}

// SpritesView is the gallery section
type SpritesView struct {
	Category string       `json:"category"`
	Tabs     []FilterTab  `json:"tabs"`
	Items    []dex.Sprite `json:"items"`
}

// NewSpritesView classifies sprites and applies category. Unknown categories
// fall back to "all". Tabs with no images are omitted.
func NewSpritesView(sprites models.Sprites, category string) SpritesView {
	if !dex.IsSpriteFilter(category) {
		category = dex.CategoryAll
	}
	items := dex.ClassifySprites(sprites)
	counts := dex.CountSprites(items)

	view := SpritesView{Category: category, Items: dex.FilterSprites(items, category)}
	for _, key := range dex.SpriteFilters {
		if counts[key] > 0 {
			view.Tabs = append(view.Tabs, FilterTab{Key: key, Label: dex.CategoryLabel(key), Count: counts[key], Active: key == category})
		}
	}
	return view
}
