package dm

// DM is a direct-message container. The creator holds elevated permissions
// over messages in it; the name is derived from member handles at creation.
type DM struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CreatorID  int64   `json:"creatorId"`
	MemberIDs  []int64 `json:"memberIds"`
	MessageIDs []int64 `json:"messageIds"`
}

func (d DM) IsMember(userID int64) bool {
	for _, id := range d.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
