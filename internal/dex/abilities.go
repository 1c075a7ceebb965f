package dex

import "github.com/meur/dexforge/internal/models"

// AbilityInfo is an ability with its English description
type AbilityInfo struct {
	Name        string `json:"name"`
	IsHidden    bool   `json:"is_hidden"`
	Effect      string `json:"effect"`
	ShortEffect string `json:"short_effect"`
}

// ShapeAbility merges the slot a Pokemon holds with the ability document
func ShapeAbility(slot models.AbilitySlot, ability models.Ability) AbilityInfo {
	info := AbilityInfo{
		Name:     slot.Ability.Name,
		IsHidden: slot.IsHidden,
	}
	if info.Name == "" {
		info.Name = ability.Name
	}
	if entry, ok := englishEffect(ability.EffectEntries); ok {
		info.Effect = entry.Effect
		info.ShortEffect = entry.ShortEffect
	}
	return info
}
