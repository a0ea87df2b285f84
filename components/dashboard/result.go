package dashboard

// Outcome distinguishes a usable payload from an unauthorized response.
type Outcome int

const (
	// OutcomeOK means Data holds the decoded payload.
	OutcomeOK Outcome = iota
	// OutcomeUnauthorized means the backend rejected the viewer's session. Data is zero.
	OutcomeUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Result carries a fetch outcome. Callers decide how to react to an
// unauthorized response; fetchers never navigate on their own.
type Result[T any] struct {
	Data    T
	Outcome Outcome
}

// Ok wraps a decoded payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, Outcome: OutcomeOK}
}

// Unauthorized builds the unauthorized variant.
func Unauthorized[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeUnauthorized}
}

// IsUnauthorized reports whether the backend answered 401.
func (r Result[T]) IsUnauthorized() bool {
	return r.Outcome == OutcomeUnauthorized
}
