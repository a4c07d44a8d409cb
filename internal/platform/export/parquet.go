// Package export writes bundle classifications as parquet rows.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/ehr/nhcx-viewer/internal/domain/workflow"
)

// Row is one classified bundle.
type Row struct {
	BundleID      string `parquet:"bundle_id"`
	Name          string `parquet:"name"`
	Category      string `parquet:"category"`
	Direction     string `parquet:"direction"`
	Title         string `parquet:"title"`
	ResourceType  string `parquet:"resource_type,optional"`
	ResourceID    string `parquet:"resource_id,optional"`
	ResourceCount int32  `parquet:"resource_count"`
	StageID       string `parquet:"stage_id,optional"`
	StageName     string `parquet:"stage_name,optional"`
	StageStatus   string `parquet:"stage_status,optional"`
	Progress      int32  `parquet:"progress"`
	Terminal      bool   `parquet:"terminal"`
	ExportedAt    int64  `parquet:"exported_at_ms"`
}

// NewRow flattens a classification.
func NewRow(id, name string, c workflow.Classification, at time.Time) Row {
	return Row{
		BundleID:      id,
		Name:          name,
		Category:      string(c.Category),
		Direction:     string(c.Direction),
		Title:         c.Title,
		ResourceType:  c.ResourceType,
		ResourceID:    c.ResourceID,
		ResourceCount: int32(c.ResourceCount),
		StageID:       c.Stage.ID,
		StageName:     c.Stage.Name,
		StageStatus:   string(c.Stage.Status),
		Progress:      int32(c.Stage.Progress),
		Terminal:      c.Stage.Terminal,
		ExportedAt:    at.UnixMilli(),
	}
}

// Writer streams rows to a snappy compressed parquet file.
type Writer struct {
	closer io.Closer
	writer *parquet.GenericWriter[Row]
	count  int
}

// NewWriter writes to w. The caller keeps ownership of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy)),
	}
}

// Create writes to a new file at path, replacing any existing file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

func (w *Writer) Write(rows ...Row) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	w.count += len(rows)
	return nil
}

// Close flushes the footer and closes the file opened by Create.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		if w.closer != nil {
			w.closer.Close()
		}
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Count returns the number of rows written.
func (w *Writer) Count() int {
	return w.count
}
