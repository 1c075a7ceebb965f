package dex

import (
	"strings"

	"github.com/meur/dexforge/internal/models"
)

// PlaceholderImage is served when a Pokemon has no usable image
const PlaceholderImage = "/static/pokeball.svg"

// MaxBaseStat scales stat bars
const MaxBaseStat = 255

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "ATK",
	"defense":         "DEF",
	"special-attack":  "SP.A",
	"special-defense": "SP.D",
	"speed":           "SPD",
}

var cardStats = map[string]bool{"hp": true, "attack": true, "defense": true, "speed": true}

// Stat is a base stat ready for a bar
type Stat struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// StatLabel is the detail-page abbreviation of a stat
func StatLabel(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}
	return name
}

func shortStatLabel(name string) string {
	short := strings.Replace(name, "special-", "sp.", 1)
	if len(short) > 3 {
		short = short[:3]
	}
	return strings.ToUpper(short)
}

func newStat(slot models.StatSlot, label string) Stat {
	return Stat{
		Name:    slot.Stat.Name,
		Label:   label,
		Value:   slot.BaseStat,
		Percent: min(100, slot.BaseStat*100/MaxBaseStat),
	}
}

// DetailStats lists every base stat with its detail label
func DetailStats(p models.Pokemon) []Stat {
	stats := make([]Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, newStat(s, StatLabel(s.Stat.Name)))
	}
	return stats
}

// CardStats lists hp, attack, defense and speed for the catalog card
func CardStats(p models.Pokemon) []Stat {
	var stats []Stat
	for _, s := range p.Stats {
		if cardStats[s.Stat.Name] {
			stats = append(stats, newStat(s, shortStatLabel(s.Stat.Name)))
		}
	}
	return stats
}

// DisplayName turns a slug like "mr-mime" into "Mr Mime"
func DisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// TypeNames lists the elemental types in slot order
func TypeNames(p models.Pokemon) []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// CardImage prefers official artwork, then dream world, then the front sprite
func CardImage(s models.Sprites) string {
	for _, url := range []string{
		s.Other.OfficialArtwork.FrontDefault,
		s.Other.DreamWorld.FrontDefault,
		s.FrontDefault,
	} {
		if url != "" {
			return url
		}
	}
	return PlaceholderImage
}

// Hero is the main detail-page image. When both front and back sprites
// exist the back one is shown on hover.
type Hero struct {
	Image string `json:"image"`
	Hover string `json:"hover,omitempty"`
}

// HeroImage picks the detail-page image
func HeroImage(s models.Sprites) Hero {
	switch {
	case s.FrontDefault != "" && s.BackDefault != "":
		return Hero{Image: s.FrontDefault, Hover: s.BackDefault}
	case s.Other.OfficialArtwork.FrontDefault != "":
		return Hero{Image: s.Other.OfficialArtwork.FrontDefault}
	case s.FrontDefault != "":
		return Hero{Image: s.FrontDefault}
	}
	return Hero{Image: PlaceholderImage}
}

// Card is a catalog grid entry
type Card struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Image string   `json:"image"`
	Types []string `json:"types"`
	Stats []Stat   `json:"stats"`
}

// NewCard shapes a Pokemon for the catalog grid
func NewCard(p models.Pokemon) Card {
	return Card{
		ID:    p.ID,
		Name:  p.Name,
		Image: CardImage(p.Sprites),
		Types: TypeNames(p),
		Stats: CardStats(p),
	}
}
