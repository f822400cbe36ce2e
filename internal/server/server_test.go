package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/dexview/internal/config"
	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/output"
)

func init() {
	output.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var upstreamNames = []string{"bulbasaur", "ivysaur", "venusaur", "charmander"}

// newUpstream serves a four-entry index; ids listed in broken answer 500.
func newUpstream(t *testing.T, indexStatus int, broken ...int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		if indexStatus != http.StatusOK {
			w.WriteHeader(indexStatus)
			return
		}
		refs := make([]string, len(upstreamNames))
		for i, name := range upstreamNames {
			refs[i] = fmt.Sprintf(`{"name": %q, "url": "%s/pokemon/%d"}`, name, srv.URL, i+1)
		}
		fmt.Fprintf(w, `{"count": %d, "results": [%s]}`, len(refs), strings.Join(refs, ","))
	})
	mux.HandleFunc("GET /pokemon/{id}", func(w http.ResponseWriter, r *http.Request) {
		var id int
		if _, err := fmt.Sscan(r.PathValue("id"), &id); err != nil || id < 1 || id > len(upstreamNames) {
			http.NotFound(w, r)
			return
		}
		for _, b := range broken {
			if b == id {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		fmt.Fprintf(w, `{"id": %d, "name": %q, "height": 10, "weight": 130, "types": [{"type": {"name": "grass"}}], "moves": []}`, id, upstreamNames[id-1])
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, upstream *httptest.Server) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.APIBase = upstream.URL
	e := engine.New(cfg)
	t.Cleanup(e.Close)
	return New(cfg, e)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleList(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK, 2))

	rec := get(t, s.Handler(), "/api/pokemon")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Loading)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Entries, 3)
	assert.Empty(t, resp.Error)
}

func TestHandleList_Query(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK))

	rec := get(t, s.Handler(), "/api/pokemon?q=SAUR")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SAUR", resp.Query)
	assert.Equal(t, 3, resp.Count)
	for _, e := range resp.Entries {
		assert.Contains(t, e.Name, "saur")
	}
}

func TestHandleList_IndexFailure(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusInternalServerError))

	rec := get(t, s.Handler(), "/api/pokemon")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Loading)
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Entries)
	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, rec.Body.String(), `"entries":[]`)
}

func TestHandleDetail(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK))

	rec := get(t, s.Handler(), "/api/pokemon/4")
	require.Equal(t, http.StatusOK, rec.Code)

	var st engine.DetailState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "4", st.ID)
	assert.False(t, st.Loading)
	assert.False(t, st.NotFound)
	require.NotNil(t, st.Detail)
	assert.Equal(t, "charmander", st.Detail.Name)
	assert.Equal(t, 1.0, st.Detail.Height)
	assert.Equal(t, 13.0, st.Detail.Weight)
}

func TestHandleDetail_NotFound(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK, 3))

	for _, id := range []string{"404", "3"} {
		t.Run(id, func(t *testing.T) {
			rec := get(t, s.Handler(), "/api/pokemon/"+id)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			var st engine.DetailState
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
			assert.False(t, st.Loading)
			assert.True(t, st.NotFound)
			assert.Nil(t, st.Detail)
		})
	}
}

func TestHealthAndCORS(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK))

	rec := get(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/pokemon", nil)
	pre := httptest.NewRecorder()
	s.Handler().ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, newUpstream(t, http.StatusOK))

	req := httptest.NewRequest(http.MethodPost, "/api/pokemon", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("x: %w", engine.ErrNotFound)))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&engine.FetchError{URL: "u", Status: 500, Message: "bad status"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(io.EOF))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := config.DefaultConfig()
	cfg.APIBase = upstream.URL
	cfg.ListenAddr = addr
	s := New(cfg, engine.New(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
