package pathgate

import (
	"errors"
	"fmt"
)

// Reason classifies why the gate denied access.
type Reason string

const (
	// ReasonTraversal means the canonical path escapes the root directory.
	ReasonTraversal Reason = "path_traversal_denied"
	// ReasonExcluded means an exclusion pattern or ignore rule matched.
	ReasonExcluded Reason = "excluded_by_policy"
	// ReasonTooLarge means the file exceeds the configured size ceiling.
	ReasonTooLarge Reason = "file_too_large"
	// ReasonNotFound means the target does not exist.
	ReasonNotFound Reason = "not_found"
	// ReasonInvalidType means the target is not the type the operation expects.
	ReasonInvalidType Reason = "invalid_type"
	// ReasonIO means an unexpected filesystem error, e.g. permission denied.
	ReasonIO Reason = "io_failure"
)

// ErrEmptyPath is returned for an empty requested path. It is an argument
// error, not a gate decision, and carries no Denial classification.
var ErrEmptyPath = errors.New("requested path is empty")

// Denial is a classified access denial. It is an expected, recoverable
// outcome: callers branch on Reason and translate it into a user-facing
// message. The requested path is kept verbatim; resolved absolute paths
// never appear in the error text.
type Denial struct {
	Reason    Reason
	Requested string
	Err       error // underlying cause, set for ReasonIO
}

func (d *Denial) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %q: %v", d.Reason, d.Requested, d.Err)
	}
	return fmt.Sprintf("%s: %q", d.Reason, d.Requested)
}

func (d *Denial) Unwrap() error {
	return d.Err
}

// ReasonOf extracts the denial classification from an error. The second
// return is false when err is not a gate denial.
func ReasonOf(err error) (Reason, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}

func deny(reason Reason, requested string) error {
	return &Denial{Reason: reason, Requested: requested}
}

func denyIO(requested string, err error) error {
	return &Denial{Reason: ReasonIO, Requested: requested, Err: err}
}
