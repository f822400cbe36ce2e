/*
PURPOSE:
  Writes catalog entries to CSV.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Export the (filtered) list view to CSV.

  Implementation-discovered:
  - Types are a list; they are joined with "|" so the column stays single-valued.
  - Needs to write to stdout as well as to files.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: internal/model.Entry

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.
  - Mutex guarded.

USAGE:
  w, err := output.NewCSVFile("entries.csv")
  w.Write(entry)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Entry struct changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/daryltucker/dexview/internal/model"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"id", "name", "types", "image"}

// CSVWriter handles writing entries as CSV.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter writes the header to w and returns a writer for entries.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{writer: cw}, nil
}

// NewCSVFile creates (or truncates) path and writes the header.
func NewCSVFile(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Write writes a single entry.
// It is thread-safe.
func (cw *CSVWriter) Write(e model.Entry) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		strconv.Itoa(e.ID),
		e.Name,
		strings.Join(e.Types, "|"),
		e.Image,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes and closes the underlying file, if any.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	if cw.closer != nil {
		return cw.closer.Close()
	}
	return cw.writer.Error()
}
