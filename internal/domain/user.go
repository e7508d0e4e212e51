package domain

// User is the account profile returned by the gateway.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResult is the outcome of sign-in, sign-up or password reset.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignupInput is the registration form.
type SignupInput struct {
	Name       string `json:"name" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=64"`
	RePassword string `json:"rePassword" validate:"required,eqfield=Password"`
	Phone      string `json:"phone" validate:"required,eg_phone"`
}

// SigninInput is the login form.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
}

// ProfileInput updates the account profile. Empty fields are left unchanged.
type ProfileInput struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,eg_phone"`
}

// ChangePasswordInput changes the password of the signed-in user.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,max=64"`
	RePassword      string `json:"rePassword" validate:"required,eqfield=Password"`
}

// ForgotPasswordInput requests a reset code by email.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyResetCodeInput checks the emailed reset code.
type VerifyResetCodeInput struct {
	ResetCode string `json:"resetCode" validate:"required,numeric,min=4,max=8"`
}

// ResetPasswordInput sets a new password after the code was verified.
type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=64"`
}
