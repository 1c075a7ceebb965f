package dex

import (
	"sort"

	"github.com/meur/dexforge/internal/models"
)

// Learn methods. MethodAll is only a filter value.
const (
	MethodAll     = "all"
	MethodLevelUp = "level-up"
	MethodMachine = "machine"
	MethodEgg     = "egg"
	MethodTutor   = "tutor"
	MethodUnknown = "unknown"
)

// MoveFilters lists the filter buckets in display order
var MoveFilters = []string{MethodAll, MethodLevelUp, MethodMachine, MethodEgg, MethodTutor}

// CollapsedMoves is how many moves the detail page shows before expanding
const CollapsedMoves = 10

var methodLabels = map[string]string{
	MethodAll:     "All",
	MethodLevelUp: "Level up",
	MethodMachine: "TM/HM",
	MethodEgg:     "Egg",
	MethodTutor:   "Tutor",
}

// MethodLabel is the human label of a learn method or filter
func MethodLabel(method string) string {
	if label, ok := methodLabels[method]; ok {
		return label
	}
	return method
}

// IsMoveFilter reports whether f names one of the fixed buckets
func IsMoveFilter(f string) bool {
	_, ok := methodLabels[f]
	return ok
}

// Move is a move reduced to a single representative learn method
type Move struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Level  int    `json:"level"`
	Method string `json:"method"`
}

// ReduceMoves picks one learn entry per move: a level-up entry wins over any
// other method (the last one listed if there are several); otherwise the
// first entry is used. Moves without entries are kept as level 0 "unknown".
func ReduceMoves(slots []models.MoveSlot) []Move {
	moves := make([]Move, 0, len(slots))
	for _, slot := range slots {
		move := Move{Name: slot.Move.Name, URL: slot.Move.URL, Method: MethodUnknown}

		if len(slot.VersionGroupDetails) > 0 {
			chosen := slot.VersionGroupDetails[0]
			for _, detail := range slot.VersionGroupDetails {
				if detail.MoveLearnMethod.Name == MethodLevelUp {
					chosen = detail
				}
			}
			move.Level = chosen.LevelLearnedAt
			if chosen.MoveLearnMethod.Name != "" {
				move.Method = chosen.MoveLearnMethod.Name
			}
		}
		moves = append(moves, move)
	}
	return moves
}

// CountMoves counts moves per filter bucket. Methods outside the fixed
// buckets only count towards "all".
func CountMoves(moves []Move) map[string]int {
	counts := map[string]int{
		MethodAll:     len(moves),
		MethodLevelUp: 0,
		MethodMachine: 0,
		MethodEgg:     0,
		MethodTutor:   0,
	}
	for _, m := range moves {
		if _, ok := counts[m.Method]; ok && m.Method != MethodAll {
			counts[m.Method]++
		}
	}
	return counts
}

// FilterMoves returns the moves in the given bucket, sorted by level for
// "level-up" and by name otherwise. The input is not modified.
func FilterMoves(moves []Move, filter string) []Move {
	result := make([]Move, 0, len(moves))
	for _, m := range moves {
		if filter == MethodAll || m.Method == filter {
			result = append(result, m)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if filter == MethodLevelUp {
			return result[i].Level < result[j].Level
		}
		return result[i].Name < result[j].Name
	})
	return result
}

var damageClassLabels = map[string]string{
	"physical": "Physical",
	"special":  "Special",
	"status":   "Status",
}

// DamageClassLabel is the human label of a damage class
func DamageClassLabel(class string) string {
	if label, ok := damageClassLabels[class]; ok {
		return label
	}
	return class
}

// MoveDetail is the shaped /move/{name} document
type MoveDetail struct {
	Name        string `json:"name"`
	Power       *int   `json:"power"`
	Accuracy    *int   `json:"accuracy"`
	PP          int    `json:"pp"`
	Type        string `json:"type"`
	DamageClass string `json:"damage_class"`
	Effect      string `json:"effect"`
}

// ShapeMoveDetail keeps the English short effect and fills display fallbacks
func ShapeMoveDetail(m models.Move) MoveDetail {
	detail := MoveDetail{
		Name:        m.Name,
		Power:       m.Power,
		Accuracy:    m.Accuracy,
		PP:          m.PP,
		Type:        "unknown",
		DamageClass: "status",
		Effect:      "No description.",
	}
	if m.Type != nil && m.Type.Name != "" {
		detail.Type = m.Type.Name
	}
	if m.DamageClass != nil && m.DamageClass.Name != "" {
		detail.DamageClass = m.DamageClass.Name
	}
	if entry, ok := englishEffect(m.EffectEntries); ok && entry.ShortEffect != "" {
		detail.Effect = entry.ShortEffect
	}
	return detail
}

func englishEffect(entries []models.EffectEntry) (models.EffectEntry, bool) {
	for _, e := range entries {
		if e.Language.Name == "en" {
			return e, true
		}
	}
	return models.EffectEntry{}, false
}
