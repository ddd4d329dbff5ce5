package httpdto

type CreateChannelRequest struct {
	Name   string `json:"name" binding:"required"`
	Public bool   `json:"public"`
}

type InviteRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

type CreateDMRequest struct {
	MemberIDs []int64 `json:"memberIds"`
}

type ContainerIDResponse struct {
	ID int64 `json:"id"`
}
