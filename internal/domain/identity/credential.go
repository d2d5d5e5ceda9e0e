package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/erp/pos/internal/domain/shared"
)

// Identity errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrUsernameTaken      = shared.NewDomainError("USERNAME_TAKEN", "Username already registered")
	ErrRegistrationClosed = shared.NewDomainError("REGISTRATION_CLOSED", "An account already exists; only one account may be registered")
	ErrStoreNotFound      = shared.NewDomainError("STORE_NOT_FOUND", "Credential store does not exist yet")
)

// Credential is one (username, password) record of the credential store.
// Passwords are kept in plaintext; the store is a flat file on a single till.
type Credential struct {
	Username string
	Password string
}

// NewCredential validates and creates a credential
func NewCredential(username, password string) (Credential, error) {
	if err := validateUsername(username); err != nil {
		return Credential{}, err
	}
	if err := validatePassword(password); err != nil {
		return Credential{}, err
	}
	return Credential{Username: username, Password: password}, nil
}

// Matches reports an exact, case-sensitive match on both fields
func (c Credential) Matches(username, password string) bool {
	return c.Username == username && c.Password == password
}

// Validation functions

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if utf8.RuneCountInString(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if strings.ContainsAny(username, "\r\n") {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot contain line breaks")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if utf8.RuneCountInString(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	if strings.ContainsAny(password, "\r\n") {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot contain line breaks")
	}
	return nil
}
