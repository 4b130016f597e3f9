// Package bot implements the conversation core: the session value threaded
// through every turn, the per-state transition handlers, and the dispatcher
// that chains them. Handlers are pure decision logic over an immutable-in,
// immutable-out Session; all I/O goes through the injected knowledge-base
// client, and telemetry is returned, not fired.
package bot

import "rumorcheck-be/pkg/message"

// State is one stage of the conversation. The set is closed; the dispatcher
// matches exhaustively and rejects anything else.
type State int

const (
	// StateInvalid is what unknown persisted state names decode to.
	StateInvalid State = iota - 1

	// StateInit is both the entry state for a new user and the terminal
	// state after any completed interaction.
	StateInit
	StateChoosingArticle
	StateAskingArticleSource
	StateAskingArticleSubmissionReason
	StateChoosingReply
	StateAskingReplyRequestReason
	StateAskingReplyFeedback
)

var stateNames = map[State]string{
	StateInit:                          "INIT",
	StateChoosingArticle:               "CHOOSING_ARTICLE",
	StateAskingArticleSource:           "ASKING_ARTICLE_SOURCE",
	StateAskingArticleSubmissionReason: "ASKING_ARTICLE_SUBMISSION_REASON",
	StateChoosingReply:                 "CHOOSING_REPLY",
	StateAskingReplyRequestReason:      "ASKING_REPLY_REQUEST_REASON",
	StateAskingReplyFeedback:           "ASKING_REPLY_FEEDBACK",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "INVALID"
}

// ParseState maps a persisted state name back to its State. Unknown names
// produce StateInvalid, which the dispatcher rejects with UnknownStateError.
func ParseState(name string) State {
	for state, n := range stateNames {
		if n == name {
			return state
		}
	}
	return StateInvalid
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	*s = ParseState(string(text))
	return nil
}

// Data is the session's accumulated facts. Fields only grow or are
// overwritten by the state that owns them; no handler clears another state's
// fields, so later states can still read earlier context.
type Data struct {
	SearchedText        string   `json:"searchedText,omitempty"`
	FoundArticleIDs     []string `json:"foundArticleIds,omitempty"`
	SelectedArticleID   string   `json:"selectedArticleId,omitempty"`
	SelectedArticleText string   `json:"selectedArticleText,omitempty"`
	ArticleSources      []string `json:"articleSources,omitempty"`
	FoundReplyIDs       []string `json:"foundReplyIds,omitempty"`
	SelectedReplyID     string   `json:"selectedReplyId,omitempty"`
}

// Event is the triggering input for one turn: the raw text or menu selection,
// plus the timestamp used to build time-scoped deep links.
type Event struct {
	Input    string `json:"input"`
	IssuedAt int64  `json:"issuedAt"`
}

// Session is the unit of state passed through the dispatcher and handlers.
// It is a value: handlers return a new Session rather than mutating their
// argument.
type Session struct {
	State   State
	Data    Data
	Event   Event
	UserID  string
	Replies []message.Message

	// SkipUser asks the dispatcher to immediately re-dispatch with the new
	// state using the same event, without waiting for real user input.
	SkipUser bool
}

// NewSession is the session of a user's first turn.
func NewSession(userID string, event Event) Session {
	return Session{State: StateInit, UserID: userID, Event: event}
}
