package models

// Session holds the authenticated admin's token and display fields for the
// lifetime of one browser session. Token presence is the sole auth signal;
// expiry is discovered reactively when an API call is rejected.
type Session struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message    string `json:"message"`
	AdminToken string `json:"adminToken"`
	Admin      struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
	} `json:"admin"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
