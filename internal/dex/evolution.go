package dex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meur/dexforge/internal/models"
)

// DefaultSpriteBase is where numbered front sprites live
const DefaultSpriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"

// Stage is one flattened evolution-tree node
type Stage struct {
	Name     string  `json:"name"`
	ID       int     `json:"id"`
	Sprite   string  `json:"sprite"`
	MinLevel *int    `json:"min_level"`
	Trigger  *string `json:"trigger"`
	Item     *string `json:"item"`
}

// Stages groups stages by their distance from the root species
type Stages [][]Stage

// Evolves reports whether the chain has more than the base stage
func (s Stages) Evolves() bool {
	return len(s) > 1
}

// IDFromURL extracts the numeric id from the trailing path segment of a
// resource URL such as https://pokeapi.co/api/v2/pokemon-species/4/.
// Returns 0 when the segment is not a number.
func IDFromURL(rawURL string) int {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0
	}
	return id
}

// SpriteURL returns the front sprite for a numbered species
func SpriteURL(base string, id int) string {
	if base == "" {
		base = DefaultSpriteBase
	}
	return fmt.Sprintf("%s/%d.png", strings.TrimRight(base, "/"), id)
}

type chainFrame struct {
	node  *models.ChainLink
	depth int
}

// ParseEvolutionChain walks the chain depth-first from the root and buckets
// every node by depth. Siblings keep the order upstream lists them in.
func ParseEvolutionChain(root models.ChainLink, spriteBase string) Stages {
	var result Stages
	stack := []chainFrame{{node: &root, depth: 0}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for len(result) <= frame.depth {
			result = append(result, nil)
		}
		result[frame.depth] = append(result[frame.depth], flattenStage(frame.node, spriteBase))

		// Push in reverse so the first child is popped first.
		children := frame.node.EvolvesTo
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, chainFrame{node: &children[i], depth: frame.depth + 1})
		}
	}

	return result
}

func flattenStage(node *models.ChainLink, spriteBase string) Stage {
	id := IDFromURL(node.Species.URL)
	stage := Stage{
		Name:   node.Species.Name,
		ID:     id,
		Sprite: SpriteURL(spriteBase, id),
	}

	if len(node.EvolutionDetails) == 0 {
		return stage
	}
	detail := node.EvolutionDetails[0]
	if detail.MinLevel != nil && *detail.MinLevel != 0 {
		level := *detail.MinLevel
		stage.MinLevel = &level
	}
	if detail.Trigger != nil && detail.Trigger.Name != "" {
		trigger := detail.Trigger.Name
		stage.Trigger = &trigger
	}
	if detail.Item != nil && detail.Item.Name != "" {
		item := detail.Item.Name
		stage.Item = &item
	}
	return stage
}

// ConditionText describes how a stage is reached, e.g. "Lv. 16"
func ConditionText(stage Stage) string {
	switch {
	case stage.MinLevel != nil:
		return fmt.Sprintf("Lv. %d", *stage.MinLevel)
	case stage.Item != nil:
		return strings.Replace(*stage.Item, "-", " ", 1)
	case stage.Trigger != nil && *stage.Trigger == "trade":
		return "Trade"
	case stage.Trigger != nil && *stage.Trigger == "use-item":
		return "Use item"
	}
	return ""
}
