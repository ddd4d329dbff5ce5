package channel

// Channel is a named container of messages with owner and member lists.
// MessageIDs is ordered by attachment time; read-side ordering is computed
// from message timestamps, not from this list.
type Channel struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Public     bool    `json:"public"`
	OwnerIDs   []int64 `json:"ownerIds"`
	MemberIDs  []int64 `json:"memberIds"`
	MessageIDs []int64 `json:"messageIds"`
	Standup    Standup `json:"standup"`
}

// Standup is the per-channel buffered standup session. Buffer holds
// "handle: line" entries collected while the session is active.
type Standup struct {
	Active    bool     `json:"active"`
	FinishAt  int64    `json:"finishAt"`
	StarterID int64    `json:"starterId"`
	Buffer    []string `json:"buffer"`
}

func (c Channel) IsMember(userID int64) bool {
	return contains(c.MemberIDs, userID)
}

func (c Channel) IsOwner(userID int64) bool {
	return contains(c.OwnerIDs, userID)
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
