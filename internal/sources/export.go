package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportError wraps a failure to write the tracking report.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("error exporting source report to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Report is the exported tracking document.
type Report struct {
	Summary      Summary         `json:"summary"`
	QueryHistory []QueryLogEntry `json:"query_history"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// Export writes the full tracking report as indented JSON. The write is
// all-or-nothing: the report lands in a temporary file first and is
// renamed into place, so a failure never leaves a partial report.
func (l *Ledger) Export(path string) error {
	report := Report{
		Summary:      l.Summary(),
		QueryHistory: l.QueryHistory(),
		GeneratedAt:  time.Now(),
	}
	if report.QueryHistory == nil {
		report.QueryHistory = []QueryLogEntry{}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.json")
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &ExportError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &ExportError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &ExportError{Path: path, Err: err}
	}
	return nil
}
