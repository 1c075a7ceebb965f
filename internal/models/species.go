package models

// Species is the /pokemon-species/{id} document
type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	BaseHappiness     int               `json:"base_happiness"`
	CaptureRate       int               `json:"capture_rate"`
	Color             NamedResource     `json:"color"`
	EggGroups         []NamedResource   `json:"egg_groups"`
	EvolutionChain    APIResource       `json:"evolution_chain"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Genera            []Genus           `json:"genera"`
	Generation        NamedResource     `json:"generation"`
	GrowthRate        NamedResource     `json:"growth_rate"`
	Habitat           *NamedResource    `json:"habitat"`
	IsBaby            bool              `json:"is_baby"`
	IsLegendary       bool              `json:"is_legendary"`
	IsMythical        bool              `json:"is_mythical"`
}

// APIResource is an unnamed reference
type APIResource struct {
	URL string `json:"url"`
}

// FlavorTextEntry is a Pokédex entry for one game version
type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Genus is the species category ("Seed Pokémon")
type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}
