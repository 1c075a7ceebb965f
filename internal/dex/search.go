package dex

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/meur/dexforge/internal/models"
)

// MaxSuggestions caps how many near matches a search returns
const MaxSuggestions = 5

// Suggestion is a catalog entry close to a search query
type Suggestion struct {
	Name     string `json:"name"`
	ID       int    `json:"id"`
	Distance int    `json:"distance"`
}

// NormalizeQuery lowercases a query and turns spaces into the hyphens used in slugs
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.Join(strings.Fields(q), "-")
}

// FindExact returns the catalog entry whose name equals the normalized query
func FindExact(index []models.NamedResource, query string) (models.NamedResource, bool) {
	query = NormalizeQuery(query)
	for _, entry := range index {
		if entry.Name == query {
			return entry, true
		}
	}
	return models.NamedResource{}, false
}

// Suggest ranks catalog entries by edit distance to query. Entries that
// contain the query as a prefix are ranked as distance 0. Distances above
// half the query length (at least 2) are dropped.
func Suggest(index []models.NamedResource, query string, limit int) []Suggestion {
	query = NormalizeQuery(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = MaxSuggestions
	}
	threshold := max(2, len(query)/2)

	var out []Suggestion
	for _, entry := range index {
		dist := levenshtein.ComputeDistance(query, entry.Name)
		if strings.HasPrefix(entry.Name, query) {
			dist = 0
		}
		if dist > threshold {
			continue
		}
		out = append(out, Suggestion{Name: entry.Name, ID: IDFromURL(entry.URL), Distance: dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
