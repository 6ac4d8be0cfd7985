package dto

type RegisterRequest struct {
	FirstName            string  `json:"firstName" binding:"required"`
	LastName             *string `json:"lastName"`
	Username             string  `json:"username" binding:"required,min=3,max=50"`
	Email                string  `json:"email" binding:"required,email"`
	Password             string  `json:"password" binding:"required,min=8"`
	PasswordConfirmation string  `json:"passwordConfirmation" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      UserInfo `json:"user"`
	AuthToken string   `json:"authToken"`
}
