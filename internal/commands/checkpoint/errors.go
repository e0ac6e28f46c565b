package checkpoint

import "fmt"

// UnknownCheckpointError is returned when no checkpoint matches an id.
type UnknownCheckpointError struct {
	ID string
}

func (e *UnknownCheckpointError) Error() string {
	return fmt.Sprintf("no checkpoint matches %q (run checkpoint list)", e.ID)
}
func (e *UnknownCheckpointError) InvalidInput() bool { return true }

// AmbiguousCheckpointError is returned when an id prefix matches several
// checkpoints.
type AmbiguousCheckpointError struct {
	ID      string
	Matches int
}

func (e *AmbiguousCheckpointError) Error() string {
	return fmt.Sprintf("checkpoint id %q is ambiguous (%d matches); use more characters", e.ID, e.Matches)
}
func (e *AmbiguousCheckpointError) InvalidInput() bool { return true }
