package request

// Login holds the request body for password authentication. TOTPCode is
// required only for accounts with two-factor enabled.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totp_code"`
}

// ChangePassword holds the request body for changing the caller's password.
// The confirmation match is enforced server-side.
type ChangePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// EnableTwoFA holds the verification code submitted after TOTP setup.
type EnableTwoFA struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}
