package hnsw

import "fmt"

// Kind classifies the errors the core can return. Names follow §7 of the
// design notes; they are indicative, not a stable wire contract.
type Kind int

const (
	_ Kind = iota
	// CapacityExceeded means the distance cache's triangular form cannot
	// address N*(N+1)/2 entries. Reported at Build start, never lazily.
	CapacityExceeded
	// InvalidParameters means M <= 0, EfConstruction <= 0, LevelLambda <= 0,
	// or k <= 0.
	InvalidParameters
	// NotBuilt means Knn was called before Build completed.
	NotBuilt
	// EmptyIndex is never constructed as an *Error: a Knn against a
	// zero-item build returns an empty result, not an error. The kind
	// exists only so callers can refer to the case by name.
	EmptyIndex
)

func (k Kind) String() string {
	switch k {
	case CapacityExceeded:
		return "CapacityExceeded"
	case InvalidParameters:
		return "InvalidParameters"
	case NotBuilt:
		return "NotBuilt"
	case EmptyIndex:
		return "EmptyIndex"
	default:
		return "Unknown"
	}
}

// Error is the core's single error type. Callers distinguish error kinds
// with errors.Is or IsKind, never by matching message text.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("hnsw: %s: %s", e.Kind, e.Msg) }

// Is lets errors.Is(err, &Error{Kind: X}) match on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
