package pokeapi

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/meur/dexforge/internal/models"
)

// FetchAll runs fetch for every url concurrently and returns the results in
// input order. The first failure cancels the remaining requests and is
// returned alone; no partial results are produced.
func FetchAll[T any](ctx context.Context, limit int, urls []string, fetch func(context.Context, string) (T, error)) ([]T, error) {
	results := make([]T, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, u := range urls {
		g.Go(func() error {
			v, err := fetch(gctx, u)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FetchPage loads one catalog window and every Pokemon in it, sorted by id.
// Any failing detail request fails the whole page.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) ([]models.Pokemon, error) {
	list, err := c.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(list.Results))
	for i, r := range list.Results {
		urls[i] = r.URL
	}

	pokemons, err := FetchAll(ctx, c.limit, urls, func(ctx context.Context, u string) (models.Pokemon, error) {
		p, err := c.GetPokemonByURL(ctx, u)
		if err != nil {
			return models.Pokemon{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pokemons, func(i, j int) bool { return pokemons[i].ID < pokemons[j].ID })
	return pokemons, nil
}

// FetchAbilities loads every ability a Pokemon holds, all or nothing
func (c *Client) FetchAbilities(ctx context.Context, slots []models.AbilitySlot) ([]models.Ability, error) {
	urls := make([]string, len(slots))
	for i, s := range slots {
		urls[i] = s.Ability.URL
	}
	return FetchAll(ctx, c.limit, urls, func(ctx context.Context, u string) (models.Ability, error) {
		a, err := c.GetAbilityByURL(ctx, u)
		if err != nil {
			return models.Ability{}, err
		}
		return *a, nil
	})
}

// Index lists the names of the first total catalog entries
func (c *Client) Index(ctx context.Context, total int) ([]models.NamedResource, error) {
	list, err := c.ListPokemon(ctx, total, 0)
	if err != nil {
		return nil, err
	}
	return list.Results, nil
}
