package dto

type PasswordLoginRequest struct {
	Password string `json:"password" form:"password" validate:"required"`
}

type PasswordLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
