package pipeline

// Default output paths used when Config leaves them empty.
const (
	DefaultCSVPath  = "labels.csv"
	DefaultJSONPath = "labels.json"
)

// Config describes one pipeline run.
type Config struct {
	// Bucket is the destination bucket; created if missing.
	Bucket string

	// Region is the bucket region. The default region is handled by the
	// provisioner; see storage.DefaultRegion.
	Region string

	// Prefix is prepended to each uploaded object key. Empty means keys
	// are bare file names.
	Prefix string

	// Paths are the local files to upload. Paths that do not resolve to a
	// regular file are skipped with a warning.
	Paths []string

	// CSVPath is where the tabular report is written.
	// Empty means DefaultCSVPath.
	CSVPath string

	// JSONPath is where the combined report is written.
	// Empty means DefaultJSONPath.
	JSONPath string

	// PerItemDir, when non-empty, receives one JSON document per uploaded
	// object.
	PerItemDir string

	// FlushPartial writes whatever was aggregated before a mid-batch
	// detection failure instead of discarding it. The failure is still
	// reported as fatal.
	FlushPartial bool
}

// withDefaults fills output paths left empty.
func (c Config) withDefaults() Config {
	if c.CSVPath == "" {
		c.CSVPath = DefaultCSVPath
	}
	if c.JSONPath == "" {
		c.JSONPath = DefaultJSONPath
	}
	return c
}
