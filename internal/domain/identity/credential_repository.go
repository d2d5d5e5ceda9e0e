package identity

import "context"

// CredentialRepository is an append-only list of credentials
type CredentialRepository interface {
	// FindAll returns every stored credential in file order
	FindAll(ctx context.Context) ([]Credential, error)

	// Append adds a credential to the end of the store
	Append(ctx context.Context, credential Credential) error
}
