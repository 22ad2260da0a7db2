package labels

import "context"

// Results iterates over per-object detection results for a batch of keys.
// It is single-pass and fail-fast in the manner of database/sql.Rows: call
// Next until it returns false, then check Err to distinguish completion
// from failure. Detection calls are issued lazily, one per Next, so keys
// after a failure are never sent to Rekognition.
type Results struct {
	ctx    context.Context
	d      *Detector
	bucket string
	keys   []string
	pos    int
	key    string
	labels []Label
	err    error
}

// DetectAll prepares detection over keys in the given bucket. No Rekognition
// call is made until Next is invoked.
func (d *Detector) DetectAll(ctx context.Context, bucket string, keys []string) *Results {
	return &Results{
		ctx:    ctx,
		d:      d,
		bucket: bucket,
		keys:   keys,
	}
}

// Next advances to the next key's detection result. It returns false when
// all keys are consumed or a detection call fails.
func (r *Results) Next() bool {
	if r.err != nil || r.pos >= len(r.keys) {
		return false
	}

	key := r.keys[r.pos]
	r.pos++

	labels, err := r.d.DetectLabels(r.ctx, r.bucket, key)
	if err != nil {
		r.err = err
		r.key = ""
		r.labels = nil
		return false
	}

	r.key = key
	r.labels = labels
	return true
}

// Item returns the key and labels produced by the most recent successful
// call to Next. It is only valid after Next returns true.
func (r *Results) Item() (string, []Label) {
	return r.key, r.labels
}

// Err returns the error that stopped iteration, or nil if all keys were
// processed.
func (r *Results) Err() error {
	return r.err
}
