package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/fsys"
	"github.com/visionforge/labelpipe/labels"
)

// itemDocument is the schema of a per-key JSON document.
type itemDocument struct {
	Key    string         `json:"s3_key"`
	Labels []labels.Label `json:"labels"`
}

// WriteJSON writes the whole report to path as one JSON document mapping
// each key to its label list, indented with two spaces. Parent directories
// are created and an existing file is overwritten.
func (r *Report) WriteJSON(fs fsys.Filesystem, path string) error {
	if err := mkdirParent(fs, path); err != nil {
		return piperrors.NewError("writeJSON", err)
	}

	data, err := encodeIndented(r)
	if err != nil {
		return piperrors.NewError("writeJSON", err)
	}

	if err := fs.WriteFile(path, data, 0o644); err != nil {
		return piperrors.NewError("writeJSON", err)
	}

	return nil
}

// WriteJSONPerKey writes one JSON document per key into dir, each holding
// the key and its label list. The directory is created if missing and
// existing documents are overwritten.
func (r *Report) WriteJSONPerKey(fs fsys.Filesystem, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return piperrors.NewError("writeJSONPerKey", err)
	}

	for _, key := range r.keys {
		data, err := encodeIndented(itemDocument{Key: key, Labels: r.byKey[key]})
		if err != nil {
			return piperrors.NewError("writeJSONPerKey", err).WithKey(key)
		}
		path := filepath.Join(dir, PerKeyFilename(key))
		if err := fs.WriteFile(path, data, 0o644); err != nil {
			return piperrors.NewError("writeJSONPerKey", err).WithKey(key)
		}
	}

	return nil
}

// PerKeyFilename returns the document file name for key. Path separators
// are flattened to "__" so every document lands in a single directory.
func PerKeyFilename(key string) string {
	return strings.ReplaceAll(key, "/", "__") + ".json"
}

// encodeIndented renders v with two-space indentation, HTML escaping off
// so non-ASCII and &<> stay literal, and a trailing newline.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
