package reasoning

import "fmt"

// InvariantViolation reports a gap in the reasoning tables. It is a programming defect.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("reasoning invariant violated: %s", e.Detail)
}
