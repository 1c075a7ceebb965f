package models

// Pokemon is the full creature document from /pokemon/{id}
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"` // decimetres
	Weight    int           `json:"weight"` // hectograms
	Types     []TypeSlot    `json:"types"`
	Stats     []StatSlot    `json:"stats"`
	Sprites   Sprites       `json:"sprites"`
	Abilities []AbilitySlot `json:"abilities"`
	Moves     []MoveSlot    `json:"moves"`
}

// TypeSlot is a single elemental type of a Pokemon
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatSlot is a base stat (hp, attack, ...)
type StatSlot struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// AbilitySlot references an ability a Pokemon can have
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// MoveSlot references a move and every way it is learned per version group
type MoveSlot struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

// VersionGroupDetail is how a move is learned in one version group
type VersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

// Sprites holds image URLs. Absent images decode to "".
type Sprites struct {
	FrontDefault     string       `json:"front_default"`
	BackDefault      string       `json:"back_default"`
	FrontFemale      string       `json:"front_female"`
	BackFemale       string       `json:"back_female"`
	FrontShiny       string       `json:"front_shiny"`
	BackShiny        string       `json:"back_shiny"`
	FrontShinyFemale string       `json:"front_shiny_female"`
	BackShinyFemale  string       `json:"back_shiny_female"`
	Other            OtherSprites `json:"other"`
}

// OtherSprites groups the non in-game image sets
type OtherSprites struct {
	OfficialArtwork ArtworkSprites  `json:"official-artwork"`
	DreamWorld      ArtworkSprites  `json:"dream_world"`
	Home            ArtworkSprites  `json:"home"`
	Showdown        ShowdownSprites `json:"showdown"`
}

// ArtworkSprites is the front-facing subset shared by artwork, dream world and home
type ArtworkSprites struct {
	FrontDefault     string `json:"front_default"`
	FrontShiny       string `json:"front_shiny"`
	FrontFemale      string `json:"front_female"`
	FrontShinyFemale string `json:"front_shiny_female"`
}

// ShowdownSprites are the animated images
type ShowdownSprites struct {
	FrontDefault string `json:"front_default"`
	BackDefault  string `json:"back_default"`
	FrontShiny   string `json:"front_shiny"`
	BackShiny    string `json:"back_shiny"`
}
