package httpdto

type StandupStartRequest struct {
	LengthSeconds int64 `json:"lengthSeconds" binding:"required"`
}

type StandupSendRequest struct {
	Body string `json:"body"`
}

type StandupStatusResponse struct {
	Active   bool  `json:"active"`
	FinishAt int64 `json:"finishAt"`
}
