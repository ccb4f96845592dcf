package auth

// RegisterForm carries the fields of the registration form.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// LoginForm carries the fields of the login form.
type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}
