package server

import (
	"net/http"

	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/model"
)

// ListResponse is the body of GET /api/pokemon.
type ListResponse struct {
	Loading bool          `json:"loading"`
	Query   string        `json:"query,omitempty"`
	Count   int           `json:"count"`
	Entries []model.Entry `json:"entries"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleList runs a fresh list load per request and narrows it by ?q=.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	screen := engine.NewListScreen(s.engine)
	err := screen.Load(r.Context())
	entries := screen.Visible(query)
	_, loading := screen.Snapshot()

	resp := ListResponse{
		Loading: loading,
		Query:   query,
		Count:   len(entries),
		Entries: entries,
	}
	if err != nil {
		// The list still renders, empty.
		resp.Error = "catalog index unavailable"
		writeJSON(w, HTTPStatus(err), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDetail runs a fresh detail load for the path identifier.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	screen := engine.NewDetailScreen(s.engine)
	_, err := screen.Show(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, HTTPStatus(err), screen.State())
		return
	}
	writeJSON(w, http.StatusOK, screen.State())
}
