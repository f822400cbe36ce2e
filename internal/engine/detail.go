/*
PURPOSE:
  Detail screen loader. Fetches one full record by identifier and
  reshapes it into the detail projection.

REQUIREMENTS:
  User-specified:
  - Show height (m), weight (kg), abilities, stats and the first moves of one entry.
  - A failed fetch shows "not found" instead of spinning forever.

  Implementation-discovered:
  - Every Show re-fetches; there is no cache across identifiers.
  - A slow response for an old identifier must not overwrite the current one.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (show), internal/server (GET /api/pokemon/{id})
  - Uses: internal/engine/client.go, internal/model

ERROR HANDLING:
  - Transport error, non-2xx or malformed body: NotFound state, error wraps ErrNotFound.
  - Loading is cleared on every path.

IMPLEMENTATION RULES:
  - Exactly one upstream request per Show (none for an empty identifier).

USAGE:
  screen := engine.NewDetailScreen(e)
  d, err := screen.Show(ctx, "25")
  st := screen.State()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update when the detail projection changes (model.Pokemon.Detail).
*/

package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/daryltucker/dexview/internal/model"
	"github.com/daryltucker/dexview/internal/output"
)

// DetailState is what the detail view renders.
type DetailState struct {
	ID       string        `json:"id"`
	Loading  bool          `json:"loading"`
	NotFound bool          `json:"not_found"`
	Detail   *model.Detail `json:"detail,omitempty"`
}

// DetailScreen holds the detail view for the identifier currently shown.
type DetailScreen struct {
	engine *Engine

	mu    sync.Mutex
	gen   uint64
	state DetailState
}

// NewDetailScreen returns an idle detail screen.
func NewDetailScreen(e *Engine) *DetailScreen {
	return &DetailScreen{engine: e}
}

// Show loads the record for id. The returned error wraps ErrNotFound on any failure.
func (s *DetailScreen) Show(ctx context.Context, id string) (model.Detail, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = DetailState{ID: id, Loading: true}
	s.mu.Unlock()

	if strings.TrimSpace(id) == "" {
		s.apply(gen, nil)
		return model.Detail{}, fmt.Errorf("empty identifier: %w", ErrNotFound)
	}

	p, err := s.engine.GetPokemon(ctx, s.engine.PokemonURL(id))
	if err != nil {
		output.Logger.Error("Failed to load entry", "id", id, "error", err)
		s.apply(gen, nil)
		return model.Detail{}, fmt.Errorf("entry %q: %w: %w", id, ErrNotFound, err)
	}

	d := p.Detail()
	s.apply(gen, &d)
	return d, nil
}

// apply settles the state if no newer Show has started since gen.
func (s *DetailScreen) apply(gen uint64, d *model.Detail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.state.Loading = false
	s.state.NotFound = d == nil
	s.state.Detail = d
}

// State returns the current view state.
func (s *DetailScreen) State() DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoadDetail runs a fresh detail screen for id.
func (e *Engine) LoadDetail(ctx context.Context, id string) (model.Detail, error) {
	return NewDetailScreen(e).Show(ctx, id)
}
