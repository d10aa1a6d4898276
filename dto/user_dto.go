package dto

// UpdateUserDTO — all fields are optional pointers. Password changes are
// not accepted here; credentials only change through the auth flow.
type UpdateUserDTO struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
}
