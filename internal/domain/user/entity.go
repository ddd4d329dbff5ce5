package user

// Permission levels. Workspace owners hold elevated rights over channel
// messages everywhere.
const (
	PermOwner  = 1
	PermMember = 2
)

// User carries the identity and membership facts the messaging core needs.
// Registration and credential handling live outside this service.
type User struct {
	ID        int64  `json:"id"`
	Handle    string `json:"handle"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	Email     string `json:"email"`
	Perm      int    `json:"perm"`
}

func (u User) IsWorkspaceOwner() bool {
	return u.Perm == PermOwner
}
