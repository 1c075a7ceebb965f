package dex

import "github.com/meur/dexforge/internal/models"

// Sprite categories. CategoryAll is only a filter value.
const (
	CategoryAll      = "all"
	CategoryDefault  = "default"
	CategoryShiny    = "shiny"
	CategoryArtwork  = "artwork"
	CategoryAnimated = "animated"
)

// SpriteFilters lists the gallery tabs in display order
var SpriteFilters = []string{CategoryAll, CategoryDefault, CategoryShiny, CategoryArtwork, CategoryAnimated}

var categoryLabels = map[string]string{
	CategoryAll:      "All",
	CategoryDefault:  "Default",
	CategoryShiny:    "Shiny",
	CategoryArtwork:  "Artwork",
	CategoryAnimated: "Animated",
}

// CategoryLabel is the human label of a sprite category
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// IsSpriteFilter reports whether f names a gallery tab
func IsSpriteFilter(f string) bool {
	_, ok := categoryLabels[f]
	return ok
}

// Sprite is a single gallery image
type Sprite struct {
	URL      string `json:"url"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// ClassifySprites flattens the populated sprite fields into tagged gallery
// items. Empty fields are skipped.
func ClassifySprites(s models.Sprites) []Sprite {
	candidates := []Sprite{
		{s.FrontDefault, "Front", CategoryDefault},
		{s.BackDefault, "Back", CategoryDefault},
		{s.FrontFemale, "Front (female)", CategoryDefault},
		{s.BackFemale, "Back (female)", CategoryDefault},
		{s.FrontShiny, "Shiny front", CategoryShiny},
		{s.BackShiny, "Shiny back", CategoryShiny},
		{s.FrontShinyFemale, "Shiny front (female)", CategoryShiny},
		{s.BackShinyFemale, "Shiny back (female)", CategoryShiny},
		{s.Other.OfficialArtwork.FrontDefault, "Official artwork", CategoryArtwork},
		{s.Other.OfficialArtwork.FrontShiny, "Shiny artwork", CategoryArtwork},
		{s.Other.DreamWorld.FrontDefault, "Dream World", CategoryArtwork},
		{s.Other.Home.FrontDefault, "Pokémon HOME", CategoryArtwork},
		{s.Other.Home.FrontShiny, "HOME shiny", CategoryArtwork},
		{s.Other.Showdown.FrontDefault, "Showdown", CategoryAnimated},
		{s.Other.Showdown.BackDefault, "Showdown back", CategoryAnimated},
		{s.Other.Showdown.FrontShiny, "Showdown shiny", CategoryAnimated},
	}

	items := make([]Sprite, 0, len(candidates))
	for _, c := range candidates {
		if c.URL != "" {
			items = append(items, c)
		}
	}
	return items
}

// FilterSprites keeps the items in category; "all" keeps everything
func FilterSprites(items []Sprite, category string) []Sprite {
	if category == CategoryAll {
		return items
	}
	result := make([]Sprite, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result
}

// CountSprites counts items per gallery tab
func CountSprites(items []Sprite) map[string]int {
	counts := map[string]int{
		CategoryAll:      len(items),
		CategoryDefault:  0,
		CategoryShiny:    0,
		CategoryArtwork:  0,
		CategoryAnimated: 0,
	}
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}
