package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meur/dexforge/internal/models"
)

func pikachu() models.Pokemon {
	stat := func(name string, v int) models.StatSlot {
		return models.StatSlot{BaseStat: v, Stat: models.NamedResource{Name: name}}
	}
	p := models.Pokemon{
		ID:   25,
		Name: "pikachu",
		Types: []models.TypeSlot{
			{Slot: 1, Type: models.NamedResource{Name: "electric"}},
		},
		Stats: []models.StatSlot{
			stat("hp", 35),
			stat("attack", 55),
			stat("defense", 40),
			stat("special-attack", 50),
			stat("special-defense", 50),
			stat("speed", 90),
		},
	}
	p.Sprites.FrontDefault = "front.png"
	p.Sprites.BackDefault = "back.png"
	p.Sprites.Other.OfficialArtwork.FrontDefault = "art.png"
	return p
}

func TestDetailStats(t *testing.T) {
	stats := DetailStats(pikachu())

	var labels []string
	for _, s := range stats {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"HP", "ATK", "DEF", "SP.A", "SP.D", "SPD"}, labels)
	assert.Equal(t, 35*100/255, stats[0].Percent)
	assert.Equal(t, "x", StatLabel("x"))
}

func TestStatPercentCapped(t *testing.T) {
	p := models.Pokemon{Stats: []models.StatSlot{{BaseStat: 300, Stat: models.NamedResource{Name: "hp"}}}}
	assert.Equal(t, 100, DetailStats(p)[0].Percent)
}

func TestNewCard(t *testing.T) {
	card := NewCard(pikachu())

	assert.Equal(t, 25, card.ID)
	assert.Equal(t, "pikachu", card.Name)
	assert.Equal(t, "art.png", card.Image)
	assert.Equal(t, []string{"electric"}, card.Types)

	var labels []string
	for _, s := range card.Stats {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"HP", "ATT", "DEF", "SPE"}, labels)
}

func TestCardImageFallbacks(t *testing.T) {
	var s models.Sprites
	assert.Equal(t, PlaceholderImage, CardImage(s))

	s.FrontDefault = "front.png"
	assert.Equal(t, "front.png", CardImage(s))

	s.Other.DreamWorld.FrontDefault = "dream.svg"
	assert.Equal(t, "dream.svg", CardImage(s))

	s.Other.OfficialArtwork.FrontDefault = "art.png"
	assert.Equal(t, "art.png", CardImage(s))
}

func TestHeroImage(t *testing.T) {
	p := pikachu()
	assert.Equal(t, Hero{Image: "front.png", Hover: "back.png"}, HeroImage(p.Sprites))

	p.Sprites.BackDefault = ""
	assert.Equal(t, Hero{Image: "art.png"}, HeroImage(p.Sprites))

	p.Sprites.Other.OfficialArtwork.FrontDefault = ""
	assert.Equal(t, Hero{Image: "front.png"}, HeroImage(p.Sprites))

	assert.Equal(t, Hero{Image: PlaceholderImage}, HeroImage(models.Sprites{}))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Mr Mime", DisplayName("mr-mime"))
	assert.Equal(t, "Pikachu", DisplayName("pikachu"))
	assert.Equal(t, "", DisplayName(""))
}
