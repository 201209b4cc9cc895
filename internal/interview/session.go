package interview

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a session transcript. The first turn of a session is
// always the System framing instruction; it is part of the transcript but is
// never user-visible dialogue.
type Turn struct {
	Role    Role
	Content string
}

// State is the lifecycle stage of a session. Transitions only move forward;
// Closed is terminal for a session instance.
type State int

const (
	StateIdle State = iota
	StatePriming
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePriming:
		return "priming"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one mock-interview conversation. The transcript is append-only:
// turns are never mutated or reordered once appended. After the initial
// {System, Assistant} priming pair it alternates {User, Assistant}.
type Session struct {
	ID         string
	JobRole    string
	Transcript []Turn
	State      State
	Feedback   string
}

// Answers returns the number of User turns in the transcript.
func (s *Session) Answers() int {
	count := 0
	for _, turn := range s.Transcript {
		if turn.Role == RoleUser {
			count++
		}
	}
	return count
}

// LastQuestion returns the content of the most recent Assistant turn, or an
// empty string when none exists yet.
func (s *Session) LastQuestion() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == RoleAssistant {
			return s.Transcript[i].Content
		}
	}
	return ""
}
