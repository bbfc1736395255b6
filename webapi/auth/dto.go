package auth

// RegisterInput represents the request body for member registration.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	// bcrypt only hashes the first 72 bytes, so longer passwords are
	// rejected up front.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput represents the request body for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
