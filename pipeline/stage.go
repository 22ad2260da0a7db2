package pipeline

import (
	"errors"
	"fmt"

	piperrors "github.com/visionforge/labelpipe/errors"
)

// Stage identifies which part of the run an error belongs to.
type Stage string

// Pipeline stages in execution order.
const (
	StageSession   Stage = "session"
	StageProvision Stage = "provision"
	StageUpload    Stage = "upload"
	StageDetect    Stage = "detect"
	StageWrite     Stage = "write"
)

// StageError wraps a failure with the stage it occurred in. ExitCode uses
// the stage to pick the process exit status.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Exit statuses reported by ExitCode. Each fatal condition gets its own
// value so callers can tell them apart without parsing messages.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitProvision     = 3
	ExitEmptyBatch    = 4
	ExitNoCredentials = 5
	ExitDetection     = 6
)

// ExitCode maps an error returned by Run (or by session setup) to the
// process exit status. A nil error is success; errors that carry no stage
// report the generic failure status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		return ExitFailure
	}

	switch stageErr.Stage {
	case StageSession:
		return ExitUsage
	case StageProvision:
		return ExitProvision
	case StageUpload:
		return ExitEmptyBatch
	case StageDetect:
		if piperrors.IsCredentials(stageErr.Err) {
			return ExitNoCredentials
		}
		return ExitDetection
	default:
		return ExitFailure
	}
}
