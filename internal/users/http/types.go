package http

type updateProfileReq struct {
	NickName  string `json:"nick_name" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type issueTokenReq struct {
	Email  string `json:"email" binding:"required,email"`
	ChatID int64  `json:"chat_id" binding:"required"`
}
