/*
PURPOSE:
  Core engine for talking to the creature-data API.
  Fetches index pages and full records and decodes them into wire models.

REQUIREMENTS:
  User-specified:
  - Request one index page of summary references.
  - Request one full record per reference, or per identifier.

  Implementation-discovered:
  - Needs an http.Client whose connection pool can hold a whole page of concurrent requests.
  - A missing `results` field is a structural failure, not an empty page.
  - No retries: every failure is terminal for the request that produced it.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (list.go, detail.go), internal/cli, internal/server
  - Uses: internal/config, internal/model, internal/output

ERROR HANDLING:
  - Every failure is returned as *FetchError (URL, status, cause).
  - Decode failures wrap ErrMalformed.

IMPLEMENTATION RULES:
  - Use net/http.
  - context.Context on every request.
  - Timeout only when configured (zero means none).

USAGE:
  e := engine.New(cfg)
  defer e.Close()
  refs, err := e.GetIndex(ctx)
  p, err := e.GetPokemon(ctx, refs[0].URL)

SELF-HEALING INSTRUCTIONS:
  - If the API moves endpoints, update IndexURL() and PokemonURL().

RELATED FILES:
  - internal/config/config.go
  - internal/model/types.go

MAINTENANCE:
  - Update for new API versions.
*/

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/daryltucker/dexview/internal/config"
	"github.com/daryltucker/dexview/internal/model"
	"github.com/daryltucker/dexview/internal/output"
)

// Engine handles upstream API interactions.
type Engine struct {
	Config *config.Config
	Client *http.Client
}

// New creates a new Engine.
func New(cfg *config.Config) *Engine {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// One index page fans out to PageLimit requests against a single host.
	transport.MaxIdleConnsPerHost = cfg.PageLimit

	return &Engine{
		Config: cfg,
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
	}
}

// Close releases idle upstream connections.
func (e *Engine) Close() {
	e.Client.CloseIdleConnections()
}

// IndexURL returns the index page URL for the configured limit and offset.
func (e *Engine) IndexURL() string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(e.Config.PageLimit))
	q.Set("offset", strconv.Itoa(e.Config.PageOffset))
	return fmt.Sprintf("%s/pokemon?%s", strings.TrimRight(e.Config.APIBase, "/"), q.Encode())
}

// PokemonURL returns the record URL for an identifier (numeric id or name).
func (e *Engine) PokemonURL(id string) string {
	return fmt.Sprintf("%s/pokemon/%s", strings.TrimRight(e.Config.APIBase, "/"), url.PathEscape(strings.TrimSpace(id)))
}

// GetIndex returns the summary references of the configured index page.
func (e *Engine) GetIndex(ctx context.Context) ([]model.SummaryRef, error) {
	var page model.IndexPage
	target := e.IndexURL()
	if err := e.getJSON(ctx, target, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, &FetchError{URL: target, Status: http.StatusOK, Message: "missing results field", Cause: ErrMalformed}
	}
	return *page.Results, nil
}

// GetPokemon fetches one full record by URL.
func (e *Engine) GetPokemon(ctx context.Context, target string) (*model.Pokemon, error) {
	var p model.Pokemon
	if err := e.getJSON(ctx, target, &p); err != nil {
		return nil, err
	}
	if p.ID == 0 && p.Name == "" {
		return nil, &FetchError{URL: target, Status: http.StatusOK, Message: "record without id or name", Cause: ErrMalformed}
	}
	return &p, nil
}

func (e *Engine) getJSON(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &FetchError{URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if e.Config.UserAgent != "" {
		req.Header.Set("User-Agent", e.Config.UserAgent)
	}

	output.Logger.Debug("Network: GET", "url", target)
	resp, err := e.Client.Do(req)
	if err != nil {
		return &FetchError{URL: target, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection goes back to the pool.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &FetchError{URL: target, Status: resp.StatusCode, Message: "bad status"}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{URL: target, Status: resp.StatusCode, Message: "invalid JSON", Cause: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	return nil
}
