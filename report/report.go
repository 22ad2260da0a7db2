// Package report aggregates per-object detection results and writes them
// out as CSV and JSON documents.
package report

import (
	"bytes"
	"encoding/json"

	"github.com/visionforge/labelpipe/labels"
)

// Row is one flattened object/label/confidence triple.
type Row struct {
	Key        string
	Label      string
	Confidence float64
}

// Report collects label lists per object key and remembers insertion
// order. Every view and serialization reproduces that order.
type Report struct {
	keys  []string
	byKey map[string][]labels.Label
}

// New returns an empty Report.
func New() *Report {
	return &Report{
		byKey: make(map[string][]labels.Label),
	}
}

// Add records the labels detected for key. Re-adding a key replaces its
// labels but keeps its original position. A nil label list is stored as an
// empty one so it serializes as [] rather than null.
func (r *Report) Add(key string, ls []labels.Label) {
	if ls == nil {
		ls = []labels.Label{}
	}
	if _, seen := r.byKey[key]; !seen {
		r.keys = append(r.keys, key)
	}
	r.byKey[key] = ls
}

// Len returns the number of keys recorded.
func (r *Report) Len() int {
	return len(r.keys)
}

// Keys returns the recorded keys in insertion order.
func (r *Report) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Labels returns the labels recorded for key and whether the key is
// present.
func (r *Report) Labels(key string) ([]labels.Label, bool) {
	ls, ok := r.byKey[key]
	return ls, ok
}

// Rows flattens the report into Row triples, expanding keys in insertion
// order and labels in detection order. The row count equals the total
// number of labels across all keys.
func (r *Report) Rows() []Row {
	var rows []Row
	for _, key := range r.keys {
		for _, l := range r.byKey[key] {
			rows = append(rows, Row{Key: key, Label: l.Name, Confidence: l.Confidence})
		}
	}
	return rows
}

// MarshalJSON renders the report as a single JSON object mapping each key
// to its label list. Keys appear in insertion order, not the sorted order
// Go applies to maps.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeInline(&buf, enc, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeInline(&buf, enc, r.byKey[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// encodeInline encodes v into buf and strips the newline Encoder.Encode
// appends after every value.
func encodeInline(buf *bytes.Buffer, enc *json.Encoder, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
