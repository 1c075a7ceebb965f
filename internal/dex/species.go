package dex

import (
	"strings"

	"github.com/meur/dexforge/internal/models"
)

// SpeciesInfo is the species summary shown on the detail page
type SpeciesInfo struct {
	FlavorText    string   `json:"flavor_text"`
	Genus         string   `json:"genus"`
	Habitat       *string  `json:"habitat"`
	Generation    string   `json:"generation"`
	CaptureRate   int      `json:"capture_rate"`
	BaseHappiness int      `json:"base_happiness"`
	GrowthRate    string   `json:"growth_rate"`
	EggGroups     []string `json:"egg_groups"`
	IsLegendary   bool     `json:"is_legendary"`
	IsMythical    bool     `json:"is_mythical"`
	IsBaby        bool     `json:"is_baby"`
}

var flavorWhitespace = strings.NewReplacer("\f", " ", "\n", " ")

// ShapeSpecies picks the latest English flavor text and genus and turns
// slugs into display labels.
func ShapeSpecies(s models.Species) SpeciesInfo {
	info := SpeciesInfo{
		Generation:    strings.ToUpper(strings.Replace(s.Generation.Name, "generation-", "Gen ", 1)),
		CaptureRate:   s.CaptureRate,
		BaseHappiness: s.BaseHappiness,
		GrowthRate:    strings.ReplaceAll(s.GrowthRate.Name, "-", " "),
		EggGroups:     make([]string, 0, len(s.EggGroups)),
		IsLegendary:   s.IsLegendary,
		IsMythical:    s.IsMythical,
		IsBaby:        s.IsBaby,
	}

	for i := len(s.FlavorTextEntries) - 1; i >= 0; i-- {
		if entry := s.FlavorTextEntries[i]; entry.Language.Name == "en" {
			info.FlavorText = flavorWhitespace.Replace(entry.FlavorText)
			break
		}
	}
	for _, g := range s.Genera {
		if g.Language.Name == "en" {
			info.Genus = g.Genus
			break
		}
	}
	if s.Habitat != nil && s.Habitat.Name != "" {
		habitat := s.Habitat.Name
		info.Habitat = &habitat
	}
	for _, g := range s.EggGroups {
		info.EggGroups = append(info.EggGroups, strings.ReplaceAll(g.Name, "-", " "))
	}
	return info
}
