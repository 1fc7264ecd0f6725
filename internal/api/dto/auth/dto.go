package auth

type RegisterRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse refresh токен и session_id уходят в cookies
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
