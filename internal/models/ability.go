package models

// Ability is the /ability/{name} document
type Ability struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	IsMainSeries  bool            `json:"is_main_series"`
	Generation    NamedResource   `json:"generation"`
	EffectEntries []EffectEntry   `json:"effect_entries"`
	Names         []LocalizedName `json:"names"`
}

// Move is the /move/{name} document
type Move struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Accuracy      *int           `json:"accuracy"`
	Power         *int           `json:"power"`
	PP            int            `json:"pp"`
	Priority      int            `json:"priority"`
	DamageClass   *NamedResource `json:"damage_class"`
	Type          *NamedResource `json:"type"`
	EffectEntries []EffectEntry  `json:"effect_entries"`
}
