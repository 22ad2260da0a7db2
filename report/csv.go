package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strconv"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/fsys"
)

// csvHeader is the first record of every tabular report.
var csvHeader = []string{"s3_key", "label", "confidence"}

// WriteCSV writes the flattened report to path as CSV: the header record
// followed by one record per label. Parent directories are created and an
// existing file is overwritten. Confidence values use the shortest decimal
// form that round-trips, so 91.2 is written as 91.2.
func (r *Report) WriteCSV(fs fsys.Filesystem, path string) error {
	if err := mkdirParent(fs, path); err != nil {
		return piperrors.NewError("writeCSV", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return piperrors.NewError("writeCSV", err)
	}
	for _, row := range r.Rows() {
		record := []string{
			row.Key,
			row.Label,
			strconv.FormatFloat(row.Confidence, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return piperrors.NewError("writeCSV", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return piperrors.NewError("writeCSV", err)
	}

	if err := fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return piperrors.NewError("writeCSV", err)
	}

	return nil
}

// mkdirParent creates the directory containing path, if any.
func mkdirParent(fs fsys.Filesystem, path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return fs.MkdirAll(dir, 0o755)
}
