package validation

// CreateUserRequest is the schema for POST /users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

func (r CreateUserRequest) Validate() error {
	return checkStruct(r)
}

// UpdateUserRequest is the schema for PUT /users/:id. Nil fields were
// absent and keep their stored values.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r UpdateUserRequest) Validate() error {
	var messages []string

	messages = appendFieldViolation(messages, "Email", r.Email, "email")
	if r.Password != nil && len(*r.Password) < 6 {
		messages = append(messages, "Password must be at least 6 characters")
	}
	messages = appendFieldViolation(messages, "Role", r.Role, "oneof=user admin")

	if len(messages) > 0 {
		return newValidationError(messages...)
	}
	return nil
}

// RegisterRequest is the schema for POST /auth/register. Role defaults to
// "user" when omitted.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (r RegisterRequest) Validate() error {
	return checkStruct(r)
}

// LoginRequest is the schema for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return checkStruct(r)
}
