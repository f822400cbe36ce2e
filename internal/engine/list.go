/*
PURPOSE:
  List screen loader. Fetches one index page, fans out one request per
  summary reference, and aggregates the records that came back.

REQUIREMENTS:
  User-specified:
  - Show every entry of the index page with name, artwork and types.
  - One failed record must not hide the others.

  Implementation-discovered:
  - Partial success is the normal case: failed slots are dropped, never stored as zero values.
  - Loading must clear exactly once, after every request has settled.
  - An index failure leaves the list empty and the screen usable.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (list), internal/server (GET /api/pokemon)
  - Uses: internal/engine/client.go, internal/output

ERROR HANDLING:
  - Index failure: logged, list settles empty, error returned.
  - Record failure: logged, slot discarded, siblings continue.

IMPLEMENTATION RULES:
  - errgroup.Group without a derived context: a failed sibling must not cancel the rest.
  - Each goroutine writes only its own slot. No concurrency cap.

USAGE:
  screen := engine.NewListScreen(e)
  err := screen.Load(ctx)
  entries, loading := screen.Snapshot()

SELF-HEALING INSTRUCTIONS:
  - If upstream starts rate limiting, add a limiter here (g.SetLimit), not in the client.

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/filter.go

MAINTENANCE:
  - Update when the list projection needs more fields (model.Pokemon.Entry).
*/

package engine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/daryltucker/dexview/internal/model"
	"github.com/daryltucker/dexview/internal/output"
)

// ErrAlreadyLoaded is returned when Load is called twice on one screen.
var ErrAlreadyLoaded = errors.New("list screen already loaded")

// ListScreen holds one load of the list view. It is single use: a fresh
// screen is created for every load.
type ListScreen struct {
	engine *Engine

	started atomic.Bool
	settle  sync.Once
	done    chan struct{}

	mu      sync.RWMutex
	loading bool
	entries []model.Entry
}

// NewListScreen returns a screen in the loading state.
func NewListScreen(e *Engine) *ListScreen {
	return &ListScreen{
		engine:  e,
		done:    make(chan struct{}),
		loading: true,
	}
}

// Load fetches the index page and every record it references.
// The error is non-nil only when the index itself could not be loaded.
func (s *ListScreen) Load(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyLoaded
	}

	refs, err := s.engine.GetIndex(ctx)
	if err != nil {
		output.Logger.Error("Failed to load index", "url", s.engine.IndexURL(), "error", err)
		s.finish([]model.Entry{})
		return err
	}
	output.Logger.Info("Index loaded", "count", len(refs))

	slots := make([]*model.Entry, len(refs))
	var g errgroup.Group
	for i, ref := range refs {
		g.Go(func() error {
			p, err := s.engine.GetPokemon(ctx, ref.URL)
			if err != nil {
				output.Logger.Warn("Skipping entry", "name", ref.Name, "url", ref.URL, "error", err)
				return nil
			}
			entry := p.Entry()
			slots[i] = &entry
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]model.Entry, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			entries = append(entries, *slot)
		}
	}

	output.Logger.Info("List loaded", "requested", len(refs), "loaded", len(entries), "failed", len(refs)-len(entries))
	s.finish(entries)
	return nil
}

// finish stores the result and clears the loading flag. Only the first call has effect.
func (s *ListScreen) finish(entries []model.Entry) {
	s.settle.Do(func() {
		s.mu.Lock()
		s.entries = entries
		s.loading = false
		s.mu.Unlock()
		close(s.done)
	})
}

// Done is closed once the loading flag has been cleared.
func (s *ListScreen) Done() <-chan struct{} {
	return s.done
}

// Snapshot returns a copy of the loaded entries and the loading flag.
func (s *ListScreen) Snapshot() ([]model.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries), s.loading
}

// Visible returns the loaded entries narrowed by query.
func (s *ListScreen) Visible(query string) []model.Entry {
	entries, _ := s.Snapshot()
	return Filter(entries, query)
}

// LoadList runs a fresh list screen to completion and returns its entries.
func (e *Engine) LoadList(ctx context.Context) ([]model.Entry, error) {
	screen := NewListScreen(e)
	if err := screen.Load(ctx); err != nil {
		return nil, err
	}
	entries, _ := screen.Snapshot()
	return entries, nil
}
