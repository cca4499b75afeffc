package fact

// State is the lifecycle of a fact record:
//
//	Unwritten -> Unread -> Read
//
// Read is terminal until the store is reset.
type State int

const (
	StateUnwritten State = iota
	StateUnread
	StateRead
)

func (s State) String() string {
	switch s {
	case StateUnwritten:
		return "unwritten"
	case StateUnread:
		return "unread"
	case StateRead:
		return "read"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving from s to next is allowed.
// Unread -> Unread (a duplicate insert) and Read -> Read (a repeated
// mark-as-read) are allowed as no-ops; nothing ever moves backward.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateUnwritten:
		return next == StateUnread
	case StateUnread:
		return next == StateUnread || next == StateRead
	case StateRead:
		return next == StateRead
	default:
		return false
	}
}
