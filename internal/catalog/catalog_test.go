package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/models"
	"github.com/meur/dexforge/internal/pokeapi"
)

// fakeSource serves canned documents. Keys in fail make the matching call return a 500.
type fakeSource struct {
	mu        sync.Mutex
	pokemon   map[string]*models.Pokemon
	species   map[int]*models.Species
	chains    map[string]*models.EvolutionChain
	abilities map[string]*models.Ability
	moves     map[string]*models.Move
	index     []models.NamedResource
	fail      map[string]bool
	pages     [][2]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pokemon:   map[string]*models.Pokemon{},
		species:   map[int]*models.Species{},
		chains:    map[string]*models.EvolutionChain{},
		abilities: map[string]*models.Ability{},
		moves:     map[string]*models.Move{},
		fail:      map[string]bool{},
	}
}

func upstreamError(what string, status int) error {
	return &pokeapi.FetchError{URL: "https://pokeapi.test/" + what, StatusCode: status}
}

func (f *fakeSource) FetchPage(_ context.Context, limit, offset int) ([]models.Pokemon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, [2]int{limit, offset})
	if f.fail["page"] {
		return nil, upstreamError("pokemon", http.StatusInternalServerError)
	}
	var out []models.Pokemon
	for id := offset + 1; id <= offset+limit; id++ {
		if p, ok := f.pokemon[strconv.Itoa(id)]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeSource) GetPokemon(_ context.Context, idOrName string) (*models.Pokemon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pokemon[idOrName]; ok {
		return p, nil
	}
	return nil, upstreamError("pokemon/"+idOrName, http.StatusNotFound)
}

func (f *fakeSource) GetSpecies(_ context.Context, id int) (*models.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail["species"] {
		return nil, upstreamError("pokemon-species", http.StatusInternalServerError)
	}
	if s, ok := f.species[id]; ok {
		return s, nil
	}
	return nil, upstreamError("pokemon-species/"+strconv.Itoa(id), http.StatusNotFound)
}

func (f *fakeSource) GetEvolutionChainByURL(_ context.Context, rawURL string) (*models.EvolutionChain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail["chain"] {
		return nil, upstreamError("evolution-chain", http.StatusInternalServerError)
	}
	if c, ok := f.chains[rawURL]; ok {
		return c, nil
	}
	return nil, upstreamError(rawURL, http.StatusNotFound)
}

func (f *fakeSource) FetchAbilities(_ context.Context, slots []models.AbilitySlot) ([]models.Ability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Ability, 0, len(slots))
	for _, s := range slots {
		a, ok := f.abilities[s.Ability.Name]
		if !ok || f.fail["ability:"+s.Ability.Name] {
			return nil, upstreamError("ability/"+s.Ability.Name, http.StatusInternalServerError)
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeSource) GetAbility(_ context.Context, name string) (*models.Ability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.abilities[name]; ok {
		return a, nil
	}
	return nil, upstreamError("ability/"+name, http.StatusNotFound)
}

func (f *fakeSource) GetMove(_ context.Context, name string) (*models.Move, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.moves[name]; ok {
		return m, nil
	}
	return nil, upstreamError("move/"+name, http.StatusNotFound)
}

func (f *fakeSource) Index(_ context.Context, total int) ([]models.NamedResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail["index"] {
		return nil, upstreamError("pokemon", http.StatusInternalServerError)
	}
	return f.index, nil
}

const chainURL = "https://pokeapi.test/evolution-chain/1/"

func speciesRef(name string, id int) models.NamedResource {
	return models.NamedResource{Name: name, URL: fmt.Sprintf("https://pokeapi.test/pokemon-species/%d/", id)}
}

// seedBulbasaur registers a fully populated #1 with a three-stage chain
func seedBulbasaur(f *fakeSource) {
	p := &models.Pokemon{
		ID:     1,
		Name:   "bulbasaur",
		Height: 7,
		Weight: 69,
		Types:  []models.TypeSlot{{Slot: 1, Type: models.NamedResource{Name: "grass"}}, {Slot: 2, Type: models.NamedResource{Name: "poison"}}},
		Stats:  []models.StatSlot{{BaseStat: 45, Stat: models.NamedResource{Name: "hp"}}},
		Abilities: []models.AbilitySlot{
			{Ability: models.NamedResource{Name: "overgrow"}, Slot: 1},
			{Ability: models.NamedResource{Name: "chlorophyll"}, IsHidden: true, Slot: 3},
		},
	}
	for i := 0; i < 14; i++ {
		p.Moves = append(p.Moves, models.MoveSlot{
			Move: models.NamedResource{Name: fmt.Sprintf("move-%02d", i)},
			VersionGroupDetails: []models.VersionGroupDetail{{
				LevelLearnedAt:  14 - i,
				MoveLearnMethod: models.NamedResource{Name: dex.MethodLevelUp},
			}},
		})
	}
	p.Moves = append(p.Moves, models.MoveSlot{
		Move:                models.NamedResource{Name: "cut"},
		VersionGroupDetails: []models.VersionGroupDetail{{MoveLearnMethod: models.NamedResource{Name: dex.MethodMachine}}},
	})
	p.Sprites.FrontDefault = "front.png"
	p.Sprites.FrontShiny = "shiny.png"

	f.pokemon["1"] = p
	f.pokemon["bulbasaur"] = p
	f.species[1] = &models.Species{
		ID:             1,
		Name:           "bulbasaur",
		Generation:     models.NamedResource{Name: "generation-i"},
		EvolutionChain: models.APIResource{URL: chainURL},
		Genera:         []models.Genus{{Genus: "Seed Pokémon", Language: models.NamedResource{Name: "en"}}},
	}
	level16, level32 := 16, 32
	f.chains[chainURL] = &models.EvolutionChain{ID: 1, Chain: models.ChainLink{
		Species: speciesRef("bulbasaur", 1),
		EvolvesTo: []models.ChainLink{{
			Species:          speciesRef("ivysaur", 2),
			EvolutionDetails: []models.EvolutionDetail{{MinLevel: &level16}},
			EvolvesTo: []models.ChainLink{{
				Species:          speciesRef("venusaur", 3),
				EvolutionDetails: []models.EvolutionDetail{{MinLevel: &level32}},
			}},
		}},
	}}
	f.abilities["overgrow"] = &models.Ability{Name: "overgrow", EffectEntries: []models.EffectEntry{
		{Effect: "Boosts grass moves.", ShortEffect: "Grass boost.", Language: models.NamedResource{Name: "en"}},
	}}
	f.abilities["chlorophyll"] = &models.Ability{Name: "chlorophyll"}
	f.moves["cut"] = &models.Move{Name: "cut", PP: 30}
}

func newService(f *fakeSource, logger *zap.Logger) *Service {
	return New(f, dex.NewPaginator(20, 1025), "http://sprites.test", logger)
}

func TestList(t *testing.T) {
	f := newFakeSource()
	for id := 41; id <= 60; id++ {
		f.pokemon[strconv.Itoa(id)] = &models.Pokemon{ID: id, Name: fmt.Sprintf("mon-%d", id)}
	}
	svc := newService(f, nil)

	view, err := svc.List(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{20, 40}}, f.pages)
	assert.Equal(t, 3, view.Page.Current)
	assert.Equal(t, 52, view.Page.TotalPages)
	require.Len(t, view.Cards, 20)
	assert.Equal(t, 41, view.Cards[0].ID)
	assert.Equal(t, dex.PlaceholderImage, view.Cards[0].Image)
	assert.NotEmpty(t, view.Window)
}

func TestListClampsPage(t *testing.T) {
	f := newFakeSource()
	svc := newService(f, nil)

	view, err := svc.List(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, 52, view.Page.Current)
	assert.Equal(t, [][2]int{{20, 1020}}, f.pages)
}

func TestListFailureKeepsPageInfo(t *testing.T) {
	f := newFakeSource()
	f.fail["page"] = true
	svc := newService(f, nil)

	view, err := svc.List(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, IsFetchFailure(err))
	require.NotNil(t, view)
	assert.Equal(t, 2, view.Page.Current)
	assert.Empty(t, view.Cards)
}

func TestDetail(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	svc := newService(f, nil)

	view, err := svc.Detail(context.Background(), "1", DetailOptions{})
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", view.Name)
	assert.InDelta(t, 0.7, view.Height, 1e-9)
	assert.InDelta(t, 6.9, view.Weight, 1e-9)
	assert.Equal(t, []string{"grass", "poison"}, view.Types)
	assert.Equal(t, dex.Hero{Image: "front.png"}, view.Hero)

	require.NotNil(t, view.Species)
	assert.Equal(t, "GEN I", view.Species.Generation)
	assert.Equal(t, "Seed Pokémon", view.Species.Genus)

	require.NotNil(t, view.Evolution)
	assert.True(t, view.Evolution.Evolves)
	require.Len(t, view.Evolution.Steps, 3)
	assert.Empty(t, view.Evolution.Steps[0].Condition)
	assert.Equal(t, "Lv. 16", view.Evolution.Steps[1].Condition)
	assert.Equal(t, "Lv. 32", view.Evolution.Steps[2].Condition)
	assert.Equal(t, "http://sprites.test/3.png", view.Evolution.Steps[2].Stages[0].Sprite)

	require.Len(t, view.Abilities, 2)
	assert.Equal(t, "overgrow", view.Abilities[0].Name)
	assert.Equal(t, "Grass boost.", view.Abilities[0].ShortEffect)
	assert.True(t, view.Abilities[1].IsHidden)

	assert.Equal(t, dex.MethodAll, view.Moves.Filter)
	assert.Equal(t, 15, view.Moves.Matched)
	assert.Len(t, view.Moves.Items, dex.CollapsedMoves)
	assert.True(t, view.Moves.HasMore())

	assert.Equal(t, dex.CategoryAll, view.Sprites.Category)
	assert.Len(t, view.Sprites.Items, 2)
}

func TestDetailFilters(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	svc := newService(f, nil)

	view, err := svc.Detail(context.Background(), "bulbasaur", DetailOptions{
		MoveFilter:     dex.MethodLevelUp,
		AllMoves:       true,
		SpriteCategory: dex.CategoryShiny,
	})
	require.NoError(t, err)

	require.Len(t, view.Moves.Items, 14)
	assert.Equal(t, 1, view.Moves.Items[0].Level)
	assert.Equal(t, 14, view.Moves.Items[13].Level)
	assert.False(t, view.Moves.HasMore())

	require.Len(t, view.Sprites.Items, 1)
	assert.Equal(t, "shiny.png", view.Sprites.Items[0].URL)
}

func TestDetailSecondaryFailuresAreSwallowed(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	f.fail["chain"] = true
	f.fail["ability:chlorophyll"] = true

	core, logs := observer.New(zap.WarnLevel)
	svc := newService(f, zap.New(core))

	view, err := svc.Detail(context.Background(), "1", DetailOptions{})
	require.NoError(t, err)

	assert.NotNil(t, view.Species, "species loaded before the chain failed")
	assert.Nil(t, view.Evolution)
	assert.Nil(t, view.Abilities, "one failing ability hides the whole section")
	assert.Equal(t, 2, logs.Len())
}

func TestDetailSpeciesFailure(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	f.fail["species"] = true
	svc := newService(f, nil)

	view, err := svc.Detail(context.Background(), "1", DetailOptions{})
	require.NoError(t, err)
	assert.Nil(t, view.Species)
	assert.Nil(t, view.Evolution)
	assert.Len(t, view.Abilities, 2)
}

func TestDetailNotFound(t *testing.T) {
	svc := newService(newFakeSource(), nil)

	_, err := svc.Detail(context.Background(), "9999", DetailOptions{})
	require.Error(t, err)
	assert.True(t, pokeapi.IsNotFound(err))
}

func TestEvolution(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	svc := newService(f, nil)

	stages, err := svc.Evolution(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, "venusaur", stages[2][0].Name)

	_, err = svc.Evolution(context.Background(), 2)
	assert.True(t, pokeapi.IsNotFound(err))
}

func TestMovesAndSprites(t *testing.T) {
	f := newFakeSource()
	seedBulbasaur(f)
	svc := newService(f, nil)
	ctx := context.Background()

	moves, err := svc.Moves(ctx, "1", dex.MethodMachine)
	require.NoError(t, err)
	require.Len(t, moves.Items, 1)
	assert.Equal(t, "cut", moves.Items[0].Name)

	sprites, err := svc.Sprites(ctx, "1", "bogus")
	require.NoError(t, err)
	assert.Equal(t, dex.CategoryAll, sprites.Category)

	detail, err := svc.MoveDetail(ctx, "cut")
	require.NoError(t, err)
	assert.Equal(t, 30, detail.PP)
	assert.Equal(t, "No description.", detail.Effect)

	ability, err := svc.AbilityDetail(ctx, "overgrow")
	require.NoError(t, err)
	assert.Equal(t, "Boosts grass moves.", ability.Effect)

	_, err = svc.AbilityDetail(ctx, "levitate")
	assert.True(t, pokeapi.IsNotFound(err))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"25", "25", true},
		{"007", "7", true},
		{"0", "0", false},
		{"-3", "-3", false},
		{"Mr Mime", "mr-mime", true},
		{"porygon-z", "porygon-z", true},
		{"", "", false},
		{"../etc", "", false},
		{"a/b", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseID(%q)", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseID(%q)", tt.in)
		}
	}
}
