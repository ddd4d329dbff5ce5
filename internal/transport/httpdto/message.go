package httpdto

type SendMessageRequest struct {
	Body string `json:"body"`
}

type SendLaterRequest struct {
	Body   string `json:"body"`
	SentAt int64  `json:"sentAt" binding:"required"`
}

type EditMessageRequest struct {
	Body string `json:"body"`
}

type ReactRequest struct {
	Kind int `json:"kind" binding:"required"`
}

type ShareMessageRequest struct {
	OgMessageID int64  `json:"ogMessageId" binding:"required"`
	Extra       string `json:"extra"`
	ChannelID   int64  `json:"channelId"`
	DMID        int64  `json:"dmId"`
}

type MessageIDResponse struct {
	MessageID int64 `json:"messageId"`
}
