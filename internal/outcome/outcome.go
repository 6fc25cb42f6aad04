// Package outcome defines the structured result returned by service
// operations. Business-rule violations are values, not errors: a service
// method never leaks a raw infrastructure error past its boundary.
package outcome

import "fmt"

type Kind int

const (
	Success Kind = iota
	Info
	PermissionDenied
	NotFound
	CapacityExceeded
	TemporalConstraintViolation
	PrerequisiteViolation
	IntegrityConflict
	Unexpected
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Info:
		return "info"
	case PermissionDenied:
		return "permission_denied"
	case NotFound:
		return "not_found"
	case CapacityExceeded:
		return "capacity_exceeded"
	case TemporalConstraintViolation:
		return "temporal_constraint_violation"
	case PrerequisiteViolation:
		return "prerequisite_violation"
	case IntegrityConflict:
		return "integrity_conflict"
	default:
		return "unexpected"
	}
}

type Outcome struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

// OK reports whether the operation took (or idempotently skipped) effect.
func (o Outcome) OK() bool {
	return o.Kind == Success || o.Kind == Info
}

func Successf(format string, args ...interface{}) Outcome {
	return Outcome{Kind: Success, Detail: fmt.Sprintf(format, args...)}
}

func Infof(format string, args ...interface{}) Outcome {
	return Outcome{Kind: Info, Detail: fmt.Sprintf(format, args...)}
}

func Errorf(kind Kind, format string, args ...interface{}) Outcome {
	return Outcome{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Unexpectedf wraps an infrastructure failure. The caller is expected to have
// logged the underlying error already.
func Unexpectedf(err error) Outcome {
	return Outcome{Kind: Unexpected, Detail: fmt.Sprintf("an unexpected error occurred: %v", err)}
}
