package session

// Status is the coarse authentication status published by the Repository.
type Status int

const (
	// StatusUnknown is the degenerate value before the first concrete status
	// is known. It never recurs once a stream has delivered a real value.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}
