package core

import "context"

// CredentialStore defines the contract for persisting the single local credential.
// Implementations must never panic; failures are returned as *ConfigIOError or
// *ConfigMissingError.
type CredentialStore interface {
	// Save persists the credential, overwriting any previous one.
	Save(cred Credential) error

	// Load returns the saved credential, or an error when none is usable.
	Load() (Credential, error)

	// Delete removes the saved credential. Absence is not an error.
	Delete() error
}

// API defines the remote calls the Service needs from an instance.
// Every method performs exactly one request and never retries.
type API interface {
	// Login exchanges a username and password for an access token.
	Login(ctx context.Context, instance, alias, password string) (string, error)

	// RevokeToken invalidates the access token on the instance.
	RevokeToken(ctx context.Context, cred Credential) error

	// GetCollection succeeds only if the collection exists.
	GetCollection(ctx context.Context, cred Credential, alias string) error

	// CreatePost publishes a post and returns its ID.
	CreatePost(ctx context.Context, cred Credential, p Post) (string, error)

	// ListPosts returns the posts of a collection as sent by the instance.
	ListPosts(ctx context.Context, cred Credential, collection string) ([]RemotePost, error)

	// DeletePost removes a post by its ID.
	DeletePost(ctx context.Context, cred Credential, id string) error
}
