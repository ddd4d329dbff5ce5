package message

// Status tracks whether a message has been committed to its container.
// Deferred sends reserve a record up-front and stay pending until the
// scheduled time arrives.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCommitted Status = "COMMITTED"
)

const (
	// MaxBodyLen is the longest body accepted by any send or edit path.
	MaxBodyLen = 1000
)

// ReactionThumbsUp is the only recognized reaction kind.
const ReactionThumbsUp = 1

// Message is the canonical message record. IDs are assigned monotonically
// and never reused, even after removal.
type Message struct {
	ID        int64      `json:"id"`
	AuthorID  int64      `json:"authorId"`
	Body      string     `json:"body"`
	SentAt    int64      `json:"sentAt"`
	Pinned    bool       `json:"pinned"`
	Status    Status     `json:"status"`
	Reactions []Reaction `json:"reactions"`
}

// Reaction groups all reactors for one reaction kind. ReactorIDs is never
// empty; removing the last reactor removes the whole entry.
type Reaction struct {
	Kind       int     `json:"kind"`
	ReactorIDs []int64 `json:"reactorIds"`
}

// ValidReactionKind reports whether kind is a recognized reaction.
func ValidReactionKind(kind int) bool {
	return kind == ReactionThumbsUp
}

// HasReactor reports whether userID already reacted with this entry's kind.
func (r Reaction) HasReactor(userID int64) bool {
	for _, id := range r.ReactorIDs {
		if id == userID {
			return true
		}
	}
	return false
}
