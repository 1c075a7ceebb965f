package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/meur/dexforge/internal/dex"
)

// SearchResult is either a direct hit (Target set) or a list of suggestions
type SearchResult struct {
	Query       string           `json:"query"`
	Target      string           `json:"target,omitempty"`
	Suggestions []dex.Suggestion `json:"suggestions"`
}

// Search resolves a name or number. Numbers within the catalog and exact
// names resolve directly; anything else yields the nearest names.
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &SearchResult{Query: query}
	if query == "" {
		return result, nil
	}

	if n, err := strconv.Atoi(query); err == nil {
		if n >= 1 && n <= s.pager.TotalItems {
			result.Target = strconv.Itoa(n)
		}
		return result, nil
	}

	index, err := s.source.Index(ctx, s.pager.TotalItems)
	if err != nil {
		return nil, err
	}
	if hit, ok := dex.FindExact(index, query); ok {
		if id := dex.IDFromURL(hit.URL); id > 0 {
			result.Target = strconv.Itoa(id)
		} else {
			result.Target = hit.Name
		}
		return result, nil
	}
	result.Suggestions = dex.Suggest(index, query, dex.MaxSuggestions)
	return result, nil
}
