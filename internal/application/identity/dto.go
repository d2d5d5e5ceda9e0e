package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for the login operation
type LoginInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	SessionID  uuid.UUID
	Username   string
	LoggedInAt time.Time
}

// RegisterInput contains the input for the registration operation
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}
