package models

// EvolutionChain is the /evolution-chain/{id} document
type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           ChainLink      `json:"chain"`
}

// ChainLink is one node of the evolution tree
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail is the condition under which a node is reached from its parent
type EvolutionDetail struct {
	Gender                *int           `json:"gender"`
	HeldItem              *NamedResource `json:"held_item"`
	Item                  *NamedResource `json:"item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	MinAffection          *int           `json:"min_affection"`
	MinBeauty             *int           `json:"min_beauty"`
	MinHappiness          *int           `json:"min_happiness"`
	MinLevel              *int           `json:"min_level"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	Trigger               *NamedResource `json:"trigger"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}
