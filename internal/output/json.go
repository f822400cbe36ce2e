/*
PURPOSE:
  Writes catalog records as JSON Lines (NDJSON).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing (jq, vecq).

  Implementation-discovered:
  - JSON Lines is append-friendly and streams well to stdout.
  - The same writer serves list entries and detail records.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: internal/model.Entry, internal/model.Detail

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w := output.NewJSONWriter(os.Stdout)
  w.Write(entry)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"
)

// JSONWriter handles writing records as JSON lines.
type JSONWriter struct {
	closer  io.Closer
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter returns a writer encoding to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// NewJSONFile creates (or truncates) path.
func NewJSONFile(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	jw := NewJSONWriter(f)
	jw.closer = f
	return jw, nil
}

// Write writes a single record as a JSON line.
func (jw *JSONWriter) Write(v any) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.encoder.Encode(v)
}

// Close closes the underlying file, if any.
func (jw *JSONWriter) Close() error {
	if jw.closer != nil {
		return jw.closer.Close()
	}
	return nil
}
