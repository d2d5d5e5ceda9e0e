package identity

import "github.com/erp/pos/internal/domain/shared"

// CheckRegistration enforces the single-account rule: once any username is
// in the store, no other distinct username may ever be registered, and the
// existing one cannot be registered again.
func CheckRegistration(existing []Credential, username string) error {
	for _, c := range existing {
		if c.Username == username {
			return shared.NewDomainError(ErrUsernameTaken.Code, "Username already registered: "+username)
		}
	}
	if len(existing) > 0 {
		return ErrRegistrationClosed
	}
	return nil
}

// FindMatch performs the login scan: the first record matching both fields wins
func FindMatch(existing []Credential, username, password string) (Credential, bool) {
	for _, c := range existing {
		if c.Matches(username, password) {
			return c, true
		}
	}
	return Credential{}, false
}
