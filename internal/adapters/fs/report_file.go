package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// ReportFile implements ports.ReportWriter by replacing a file on disk.
type ReportFile struct {
	path string
}

// NewReportFile creates a ReportFile writing to path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

// Write replaces the report atomically: the bytes go to a temp file next to
// the target, which is then renamed over it.
func (r *ReportFile) Write(ctx context.Context, report []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Unique name per write so concurrent runs never share a temp file.
	f, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(report); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Location returns the report path.
func (r *ReportFile) Location() string {
	return r.path
}

// StreamReport implements ports.ReportWriter over an io.Writer such as stdout.
type StreamReport struct {
	w    io.Writer
	name string
}

// NewStreamReport creates a StreamReport. name is used in log output.
func NewStreamReport(w io.Writer, name string) *StreamReport {
	return &StreamReport{w: w, name: name}
}

// Write sends the whole report in one call.
func (s *StreamReport) Write(ctx context.Context, report []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.w.Write(report)
	return err
}

// Location returns the stream name.
func (s *StreamReport) Location() string {
	return s.name
}
