package container

// Kind discriminates the two container flavors a message can live in.
type Kind int

const (
	KindChannel Kind = iota + 1
	KindDM
)

// Ref is a tagged reference to the channel or DM that holds a message.
// A message belongs to exactly one container for its lifetime.
type Ref struct {
	Kind Kind
	ID   int64
}

func ChannelRef(id int64) Ref {
	return Ref{Kind: KindChannel, ID: id}
}

func DMRef(id int64) Ref {
	return Ref{Kind: KindDM, ID: id}
}

func (r Ref) IsChannel() bool {
	return r.Kind == KindChannel
}

func (r Ref) IsDM() bool {
	return r.Kind == KindDM
}
