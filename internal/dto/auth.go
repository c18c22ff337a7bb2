package dto

// LoginRequest defines the credential payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
