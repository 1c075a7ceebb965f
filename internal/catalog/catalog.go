// Package catalog assembles the list, detail and search views from upstream
// documents. Each call builds a fresh snapshot; nothing is shared between
// requests.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/models"
	"github.com/meur/dexforge/internal/pokeapi"
)

// Source is the subset of the PokéAPI client the catalog needs
type Source interface {
	FetchPage(ctx context.Context, limit, offset int) ([]models.Pokemon, error)
	GetPokemon(ctx context.Context, idOrName string) (*models.Pokemon, error)
	GetSpecies(ctx context.Context, id int) (*models.Species, error)
	GetEvolutionChainByURL(ctx context.Context, rawURL string) (*models.EvolutionChain, error)
	FetchAbilities(ctx context.Context, slots []models.AbilitySlot) ([]models.Ability, error)
	GetAbility(ctx context.Context, name string) (*models.Ability, error)
	GetMove(ctx context.Context, name string) (*models.Move, error)
	Index(ctx context.Context, total int) ([]models.NamedResource, error)
}

// Service builds views
type Service struct {
	source     Source
	pager      dex.Paginator
	spriteBase string
	logger     *zap.Logger
}

// New creates a Service
func New(source Source, pager dex.Paginator, spriteBase string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, pager: pager, spriteBase: spriteBase, logger: logger}
}

// Paginator returns the catalog paginator
func (s *Service) Paginator() dex.Paginator { return s.pager }

// ListView is one page of the catalog grid
type ListView struct {
	Page   dex.Page       `json:"page"`
	Window []dex.PageLink `json:"window"`
	Cards  []dex.Card     `json:"cards"`
}

// List loads page (clamped) of the catalog. Any failing fetch fails the page.
func (s *Service) List(ctx context.Context, page int) (*ListView, error) {
	p := s.pager.Page(page)
	view := &ListView{
		Page:   p,
		Window: s.pager.Window(p.Current, dex.WindowWidth),
	}

	pokemons, err := s.source.FetchPage(ctx, p.Limit, p.Offset)
	if err != nil {
		return view, fmt.Errorf("loading page %d: %w", p.Current, err)
	}

	view.Cards = make([]dex.Card, 0, len(pokemons))
	for _, pk := range pokemons {
		view.Cards = append(view.Cards, dex.NewCard(pk))
	}
	return view, nil
}

// ParseID validates a detail identifier. Numeric ids must be positive; names
// are lowercased slugs.
func ParseID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return strconv.Itoa(n), n > 0
	}
	name := dex.NormalizeQuery(raw)
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return "", false
		}
	}
	return name, true
}

// Pokemon loads the primary document of a detail view
func (s *Service) Pokemon(ctx context.Context, idOrName string) (*models.Pokemon, error) {
	return s.source.GetPokemon(ctx, idOrName)
}

// Evolution loads the stage buckets of the chain id belongs to
func (s *Service) Evolution(ctx context.Context, id int) (dex.Stages, error) {
	species, err := s.source.GetSpecies(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.evolutionFor(ctx, species)
}

func (s *Service) evolutionFor(ctx context.Context, species *models.Species) (dex.Stages, error) {
	chain, err := s.source.GetEvolutionChainByURL(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}
	return dex.ParseEvolutionChain(chain.Chain, s.spriteBase), nil
}

// Moves reduces a Pokemon's moves and applies filter
func (s *Service) Moves(ctx context.Context, idOrName, filter string) (*MovesView, error) {
	p, err := s.source.GetPokemon(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	view := NewMovesView(p.Moves, filter, true)
	return &view, nil
}

// Sprites classifies a Pokemon's sprites and applies category
func (s *Service) Sprites(ctx context.Context, idOrName, category string) (*SpritesView, error) {
	p, err := s.source.GetPokemon(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	view := NewSpritesView(p.Sprites, category)
	return &view, nil
}

// MoveDetail loads and shapes /move/{name}
func (s *Service) MoveDetail(ctx context.Context, name string) (*dex.MoveDetail, error) {
	m, err := s.source.GetMove(ctx, name)
	if err != nil {
		return nil, err
	}
	detail := dex.ShapeMoveDetail(*m)
	return &detail, nil
}

// AbilityDetail loads and shapes /ability/{name}
func (s *Service) AbilityDetail(ctx context.Context, name string) (*dex.AbilityInfo, error) {
	a, err := s.source.GetAbility(ctx, name)
	if err != nil {
		return nil, err
	}
	info := dex.ShapeAbility(models.AbilitySlot{}, *a)
	return &info, nil
}

// loadSecondary fetches species, evolution chain and abilities concurrently.
// These sections are best effort: failures are logged and leave the section empty.
func (s *Service) loadSecondary(ctx context.Context, p *models.Pokemon, view *DetailView) {
	var g errgroup.Group

	g.Go(func() error {
		species, err := s.source.GetSpecies(ctx, p.ID)
		if err != nil {
			s.logger.Warn("species unavailable", zap.Int("id", p.ID), zap.Error(err))
			return nil
		}
		info := dex.ShapeSpecies(*species)
		view.Species = &info

		stages, err := s.evolutionFor(ctx, species)
		if err != nil {
			s.logger.Warn("evolution chain unavailable", zap.Int("id", p.ID), zap.Error(err))
			return nil
		}
		view.Evolution = NewEvolutionView(stages)
		return nil
	})

	if len(p.Abilities) > 0 {
		g.Go(func() error {
			abilities, err := s.source.FetchAbilities(ctx, p.Abilities)
			if err != nil {
				s.logger.Warn("abilities unavailable", zap.Int("id", p.ID), zap.Error(err))
				return nil
			}
			infos := make([]dex.AbilityInfo, len(abilities))
			for i, a := range abilities {
				infos[i] = dex.ShapeAbility(p.Abilities[i], a)
			}
			view.Abilities = infos
			return nil
		})
	}

	g.Wait()
}

// Detail loads a Pokemon and its best-effort sections. Only the primary
// document can fail the view.
func (s *Service) Detail(ctx context.Context, idOrName string, opts DetailOptions) (*DetailView, error) {
	p, err := s.source.GetPokemon(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	view := &DetailView{
		ID:      p.ID,
		Name:    p.Name,
		Height:  float64(p.Height) / 10,
		Weight:  float64(p.Weight) / 10,
		Hero:    dex.HeroImage(p.Sprites),
		Types:   dex.TypeNames(*p),
		Stats:   dex.DetailStats(*p),
		Moves:   NewMovesView(p.Moves, opts.MoveFilter, opts.AllMoves),
		Sprites: NewSpritesView(p.Sprites, opts.SpriteCategory),
	}
	s.loadSecondary(ctx, p, view)
	return view, nil
}

// IsFetchFailure reports whether err came from upstream rather than from us
func IsFetchFailure(err error) bool {
	var fe *pokeapi.FetchError
	return errors.As(err, &fe)
}
