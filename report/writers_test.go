package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionforge/labelpipe/internal/fsys"
	"github.com/visionforge/labelpipe/labels"
)

// sampleReport builds the report used across writer tests.
func sampleReport() *Report {
	rep := New()
	rep.Add("uploads/a.jpg", []labels.Label{
		{Name: "Cat", Confidence: 91.2},
		{Name: "Black & White", Confidence: 88.5},
	})
	rep.Add("uploads/café.png", []labels.Label{
		{Name: "Café", Confidence: 77.75},
	})
	rep.Add("uploads/blank.gif", []labels.Label{})
	return rep
}

// TestReport_WriteCSV verifies header, row order, and the plain decimal
// confidence format.
func TestReport_WriteCSV(t *testing.T) {
	rep := New()
	rep.Add("uploads/a.jpg", []labels.Label{
		{Name: "Cat", Confidence: 91.2},
		{Name: "Animal", Confidence: 88.5},
	})
	rep.Add("uploads/b.png", []labels.Label{
		{Name: "Tree", Confidence: 100},
	})

	memFS := fsys.NewInMemoryFS()
	require.NoError(t, rep.WriteCSV(memFS, "labels.csv"))

	data, err := memFS.ReadFile("labels.csv")
	require.NoError(t, err)

	want := "s3_key,label,confidence\n" +
		"uploads/a.jpg,Cat,91.2\n" +
		"uploads/a.jpg,Animal,88.5\n" +
		"uploads/b.png,Tree,100\n"
	assert.Equal(t, want, string(data))
}

// TestReport_WriteCSV_EmptyReport verifies an empty report still writes
// the header record.
func TestReport_WriteCSV_EmptyReport(t *testing.T) {
	memFS := fsys.NewInMemoryFS()
	require.NoError(t, New().WriteCSV(memFS, "labels.csv"))

	data, err := memFS.ReadFile("labels.csv")
	require.NoError(t, err)
	assert.Equal(t, "s3_key,label,confidence\n", string(data))
}

// TestReport_WriteCSV_CreatesParentDirs verifies missing directories on the
// output path are created.
func TestReport_WriteCSV_CreatesParentDirs(t *testing.T) {
	memFS := fsys.NewInMemoryFS()
	require.NoError(t, New().WriteCSV(memFS, "out/nested/labels.csv"))

	exists, err := memFS.Exists("out/nested/labels.csv")
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestReport_WriteCSV_Overwrites verifies a rerun replaces the previous
// file contents entirely.
func TestReport_WriteCSV_Overwrites(t *testing.T) {
	memFS := fsys.NewInMemoryFS()

	first := New()
	first.Add("uploads/a.jpg", []labels.Label{
		{Name: "Cat", Confidence: 91.2},
		{Name: "Animal", Confidence: 88.5},
	})
	require.NoError(t, first.WriteCSV(memFS, "labels.csv"))

	second := New()
	second.Add("uploads/b.png", []labels.Label{{Name: "Tree", Confidence: 80}})
	require.NoError(t, second.WriteCSV(memFS, "labels.csv"))

	data, err := memFS.ReadFile("labels.csv")
	require.NoError(t, err)
	assert.Equal(t, "s3_key,label,confidence\nuploads/b.png,Tree,80\n", string(data))
}

// TestReport_WriteJSON verifies the combined document: insertion order,
// two-space indentation, literal non-ASCII and ampersands, and a trailing
// newline.
func TestReport_WriteJSON(t *testing.T) {
	memFS := fsys.NewInMemoryFS()
	require.NoError(t, sampleReport().WriteJSON(memFS, "labels.json"))

	data, err := memFS.ReadFile("labels.json")
	require.NoError(t, err)

	want := `{
  "uploads/a.jpg": [
    {
      "name": "Cat",
      "confidence": 91.2
    },
    {
      "name": "Black & White",
      "confidence": 88.5
    }
  ],
  "uploads/café.png": [
    {
      "name": "Café",
      "confidence": 77.75
    }
  ],
  "uploads/blank.gif": []
}
`
	assert.Equal(t, want, string(data))
}

// TestReport_WriteJSON_EmptyReport verifies an empty report writes an
// empty object document.
func TestReport_WriteJSON_EmptyReport(t *testing.T) {
	memFS := fsys.NewInMemoryFS()
	require.NoError(t, New().WriteJSON(memFS, "labels.json"))

	data, err := memFS.ReadFile("labels.json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

// TestReport_WriteJSONPerKey verifies one document per key with flattened
// file names and the s3_key/labels schema.
func TestReport_WriteJSONPerKey(t *testing.T) {
	rep := New()
	rep.Add("uploads/a.jpg", []labels.Label{{Name: "Cat", Confidence: 91.2}})
	rep.Add("b.png", []labels.Label{})

	memFS := fsys.NewInMemoryFS()
	require.NoError(t, rep.WriteJSONPerKey(memFS, "items"))

	data, err := memFS.ReadFile("items/uploads__a.jpg.json")
	require.NoError(t, err)
	want := `{
  "s3_key": "uploads/a.jpg",
  "labels": [
    {
      "name": "Cat",
      "confidence": 91.2
    }
  ]
}
`
	assert.Equal(t, want, string(data))

	data, err = memFS.ReadFile("items/b.png.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"s3_key\": \"b.png\",\n  \"labels\": []\n}\n", string(data))
}

// TestReport_WriteJSONPerKey_EmptyReport verifies the directory is created
// even when there is nothing to write.
func TestReport_WriteJSONPerKey_EmptyReport(t *testing.T) {
	memFS := fsys.NewInMemoryFS()
	require.NoError(t, New().WriteJSONPerKey(memFS, "items"))

	exists, err := memFS.Exists("items")
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestPerKeyFilename covers separator flattening for nested keys.
func TestPerKeyFilename(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "prefixed key", key: "uploads/a.jpg", want: "uploads__a.jpg.json"},
		{name: "bare key", key: "a.jpg", want: "a.jpg.json"},
		{name: "nested key", key: "x/y/z.png", want: "x__y__z.png.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerKeyFilename(tt.key))
		})
	}
}
