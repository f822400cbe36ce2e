package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulbasaurJSON = `{
	"id": 1,
	"name": "bulbasaur",
	"height": 7,
	"weight": 69,
	"sprites": {"other": {"dream_world": {"front_default": "https://img.example/1.svg"}}},
	"types": [
		{"slot": 1, "type": {"name": "grass", "url": "u"}},
		{"slot": 2, "type": {"name": "poison", "url": "u"}}
	],
	"abilities": [
		{"ability": {"name": "overgrow"}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "chlorophyll"}, "is_hidden": true, "slot": 3}
	],
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}}
	],
	"moves": [{"move": {"name": "razor-wind"}}]
}`

func decodePokemon(t *testing.T, body string) Pokemon {
	t.Helper()
	var p Pokemon
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestPokemon_Entry(t *testing.T) {
	p := decodePokemon(t, bulbasaurJSON)

	e := p.Entry()
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, "bulbasaur", e.Name)
	assert.Equal(t, "https://img.example/1.svg", e.Image)
	assert.Equal(t, []string{"grass", "poison"}, e.Types)
}

func TestPokemon_DetailUnitConversion(t *testing.T) {
	p := decodePokemon(t, bulbasaurJSON)

	d := p.Detail()
	assert.Equal(t, 0.7, d.Height)
	assert.Equal(t, 6.9, d.Weight)
	assert.Equal(t, []string{"overgrow", "chlorophyll"}, d.Abilities)
	assert.Equal(t, []Stat{{Name: "hp", Value: 45}, {Name: "attack", Value: 49}}, d.Stats)
	assert.Equal(t, []string{"razor-wind"}, d.Moves)
}

func TestPokemon_DetailTruncatesMoves(t *testing.T) {
	moves := make([]string, 20)
	want := make([]string, 0, MaxMoves)
	for i := range moves {
		name := fmt.Sprintf("move-%02d", i)
		moves[i] = fmt.Sprintf(`{"move": {"name": %q}}`, name)
		if i < MaxMoves {
			want = append(want, name)
		}
	}
	p := decodePokemon(t, `{"id": 4, "name": "charmander", "moves": [`+strings.Join(moves, ",")+`]}`)

	d := p.Detail()
	assert.Len(t, d.Moves, MaxMoves)
	assert.Equal(t, want, d.Moves)
}

func TestPokemon_NullSafeProjection(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no sprites", `{"id": 7, "name": "squirtle"}`},
		{"null other", `{"id": 7, "name": "squirtle", "sprites": {"other": null}}`},
		{"null dream world", `{"id": 7, "name": "squirtle", "sprites": {"other": {"dream_world": null}}}`},
		{"null artwork", `{"id": 7, "name": "squirtle", "sprites": {"other": {"dream_world": {"front_default": null}}}}`},
		{"null nested refs", `{"id": 7, "name": "squirtle", "types": [{"type": null}], "abilities": [{"ability": null}], "stats": [{"stat": null}], "moves": [{"move": null}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodePokemon(t, tt.body)

			assert.NotPanics(t, func() {
				e := p.Entry()
				assert.Equal(t, 7, e.ID)
				assert.Empty(t, e.Image)
				assert.Empty(t, e.Types)

				d := p.Detail()
				assert.Empty(t, d.Abilities)
				assert.Empty(t, d.Stats)
				assert.Empty(t, d.Moves)
			})
		})
	}
}

func TestIndexPage_MissingResults(t *testing.T) {
	var page IndexPage
	require.NoError(t, json.Unmarshal([]byte(`{"count": 3, "result": []}`), &page))
	assert.Nil(t, page.Results)

	require.NoError(t, json.Unmarshal([]byte(`{"count": 0, "results": []}`), &page))
	require.NotNil(t, page.Results)
	assert.Empty(t, *page.Results)
}
