// Package core holds the domain of the WriteFreely client: credentials, posts,
// the error taxonomy and the Service that drives login, logout and content
// operations through the CredentialStore and API ports.
package core

import "time"

// Credential is the locally persisted login of a single user.
// Both fields must be non-empty for the credential to be usable.
type Credential struct {
	Instance    string `json:"instance"`
	AccessToken string `json:"access_token"`
}

// Valid reports whether both fields are set.
func (c Credential) Valid() bool {
	return c.Instance != "" && c.AccessToken != ""
}

// Post is an outbound post.
// An empty Title or Collection means the field is absent: the post is
// untitled, or it is an uncollected (personal) post.
type Post struct {
	Body       string
	Title      string
	Collection string
}

// RemotePost is a post as returned by the instance when listing a collection.
type RemotePost struct {
	ID      string
	Title   string
	Body    string
	Created time.Time
}

// PostSummary is a listing entry ready for display.
type PostSummary struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Created time.Time `json:"created" yaml:"created"`
}

// Session is the in-memory state of an interactive run.
// It is never persisted.
type Session struct {
	Credential Credential
	Collection string
}

// LoggedIn reports whether the session carries a usable credential.
func (s Session) LoggedIn() bool {
	return s.Credential.Valid()
}

// Reset drops the credential and the collection.
func (s *Session) Reset() {
	s.Credential = Credential{}
	s.Collection = ""
}

// LogoutReport summarizes the remote half of a logout.
// The local credential is removed regardless of what it says.
type LogoutReport struct {
	// Invalidated is true when the instance confirmed the token was revoked.
	Invalidated bool
	// RemoteErr holds the soft failure of the revocation call, if any.
	RemoteErr error
}
