package dto

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshDTO carries the refresh token for both /auth/refresh and
// /auth/logout.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}
