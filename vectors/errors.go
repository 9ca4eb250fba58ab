package vectors

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when input polynomials or vectors do not have the expected shape.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvariantViolation is matched by every *InvariantViolation through errors.Is.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Check names the verification that an *InvariantViolation reports.
type Check string

const (
	// CheckCiphertextMismatch is reported when pk0*sk + e does not reduce to ct0 in the ring.
	CheckCiphertextMismatch = Check("ciphertext mismatch")
	// CheckDegree is reported when an intermediate polynomial does not have its expected degree.
	CheckDegree = Check("degree")
	// CheckNonZeroRemainder is reported when an exact division leaves a remainder.
	CheckNonZeroRemainder = Check("non-zero remainder")
	// CheckCyclotomicMultiple is reported when r2*(x^N+1) differs from the centered difference.
	CheckCyclotomicMultiple = Check("cyclotomic multiple")
	// CheckIdentity is reported when ct0hat + r1*qi + r2*(x^N+1) != ct0 over Z.
	CheckIdentity = Check("identity")
	// CheckSecondComponent is reported when ct1 != pk1.
	CheckSecondComponent = Check("second component")
	// CheckBoundExceeded is reported when a vector has a coefficient outside of its bound.
	CheckBoundExceeded = Check("bound exceeded")
)

// InvariantViolation reports a failed internal consistency check. It is fatal to
// the computation that returned it: the inputs are not a valid encryption under
// the given parameters, or the witness does not fit its bounds.
type InvariantViolation struct {
	// Component is the index of the RNS component, or -1 for shared vectors.
	Component int
	Check     Check
	// Field is the name of the offending vector, if any.
	Field    string
	Expected string
	Actual   string
}

func (e *InvariantViolation) Error() string {
	where := "shared"
	if e.Component >= 0 {
		where = fmt.Sprintf("component %d", e.Component)
	}
	if e.Field != "" {
		where = fmt.Sprintf("%s, %s", where, e.Field)
	}
	return fmt.Sprintf("%s: %s (%s): expected %s, got %s", ErrInvariantViolation, e.Check, where, e.Expected, e.Actual)
}

// Is allows errors.Is(err, ErrInvariantViolation).
func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariantViolation
}

// digest shortens long values for diagnostics.
func digest(s string) string {
	if len(s) <= 96 {
		return s
	}
	return s[:44] + " ... " + s[len(s)-44:]
}
