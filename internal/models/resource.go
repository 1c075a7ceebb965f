package models

// NamedResource is the {name, url} reference PokéAPI uses for every link
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonListResponse is the paginated /pokemon listing
type PokemonListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// LocalizedName is a name entry tagged with its language
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// EffectEntry is an effect description tagged with its language
type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}
