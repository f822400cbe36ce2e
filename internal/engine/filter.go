package engine

import (
	"strings"

	"github.com/daryltucker/dexview/internal/model"
)

// Filter returns the entries whose name contains query, ignoring case.
// An empty query returns entries unchanged. The input is never modified.
func Filter(entries []model.Entry, query string) []model.Entry {
	if query == "" {
		return entries
	}

	q := strings.ToLower(query)
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}
