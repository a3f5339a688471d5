package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/writego/pkg/draft"
)

// Service handles the business logic of the client: the credential
// lifecycle and the content operations against an instance.
// It never prints or exits; every outcome is returned to the caller.
type Service struct {
	store  CredentialStore
	api    API
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards all records.
func NewService(store CredentialStore, api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, api: api, logger: logger}
}

// Credential reads the saved credential fresh from the store.
func (s *Service) Credential() (Credential, error) {
	return s.store.Load()
}

// Login exchanges the username and password for an access token and saves
// it together with the instance. Nothing is saved when the login fails.
//
// If the login succeeds but saving fails, the credential is returned along
// with the save error.
func (s *Service) Login(ctx context.Context, instance, username, password string) (Credential, error) {
	instance = NormalizeInstance(instance)
	if instance == "" || username == "" || password == "" {
		return Credential{}, fmt.Errorf("%w: instance, username and password are required", ErrInvalidArgument)
	}

	s.logger.Debug("logging in", "instance", instance, "alias", username)
	token, err := s.api.Login(ctx, instance, username, password)
	if err != nil {
		return Credential{}, err
	}
	if token == "" {
		return Credential{}, &MalformedResponseError{Op: "login", Reason: "no access token"}
	}

	cred := Credential{Instance: instance, AccessToken: token}
	if err := s.store.Save(cred); err != nil {
		return cred, fmt.Errorf("logged in but could not save credentials: %w", err)
	}

	s.logger.Info("logged in", "instance", instance, "alias", username)
	return cred, nil
}

// Logout invalidates the token on the instance, then deletes the local
// credential. The remote call is best-effort: its failure is reported in
// the LogoutReport and never prevents the local delete. The returned error
// is only the local delete failure.
func (s *Service) Logout(ctx context.Context, cred Credential) (LogoutReport, error) {
	var report LogoutReport

	if !cred.Valid() {
		report.RemoteErr = fmt.Errorf("%w: credential is incomplete", ErrInvalidArgument)
	} else if err := s.api.RevokeToken(ctx, cred); err != nil {
		report.RemoteErr = err
	} else {
		report.Invalidated = true
	}

	if report.RemoteErr != nil {
		s.logger.Warn("could not invalidate access token, removing local credentials anyway",
			"instance", cred.Instance, "error", report.RemoteErr)
	}

	if err := s.store.Delete(); err != nil {
		return report, err
	}

	s.logger.Info("logged out", "instance", cred.Instance, "invalidated", report.Invalidated)
	return report, nil
}

// Revoke invalidates a token on its instance without touching the store.
// It is used to retire the previous token after a new login replaced it.
func (s *Service) Revoke(ctx context.Context, cred Credential) error {
	if !cred.Valid() {
		return fmt.Errorf("%w: credential is incomplete", ErrInvalidArgument)
	}
	if err := s.api.RevokeToken(ctx, cred); err != nil {
		return err
	}
	s.logger.Debug("revoked token", "instance", cred.Instance)
	return nil
}

// LogoutSaved logs out the credential held by the store.
//
// When no usable credential is saved, any leftover file is still removed and
// the load error is returned so the caller can tell the user.
func (s *Service) LogoutSaved(ctx context.Context) (LogoutReport, error) {
	cred, err := s.store.Load()
	if err != nil {
		if delErr := s.store.Delete(); delErr != nil {
			s.logger.Warn("could not remove unusable config", "error", delErr)
		}
		return LogoutReport{}, err
	}
	return s.Logout(ctx, cred)
}

// ValidateCollection reports whether the collection exists on the instance.
// When it returns false the error says why, for display.
func (s *Service) ValidateCollection(ctx context.Context, cred Credential, collection string) (bool, error) {
	if collection == "" {
		return false, fmt.Errorf("%w: no collection given", ErrInvalidArgument)
	}

	if err := s.api.GetCollection(ctx, cred, collection); err != nil {
		s.logger.Debug("collection check failed", "collection", collection, "error", err)
		return false, err
	}
	return true, nil
}

// CreatePost publishes the post and returns its ID.
// A post without a collection is created as an uncollected post.
func (s *Service) CreatePost(ctx context.Context, cred Credential, p Post) (string, error) {
	if strings.TrimSpace(p.Body) == "" {
		return "", fmt.Errorf("%w: post body is empty", ErrInvalidArgument)
	}

	id, err := s.api.CreatePost(ctx, cred, p)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", &MalformedResponseError{Op: "create post", Reason: "no post id"}
	}

	s.logger.Info("created post", "id", id, "collection", p.Collection, "titled", p.Title != "")
	return id, nil
}

// PreparePost parses raw content into a post without contacting the instance.
// A collection given by the caller wins over one named in the frontmatter.
func (s *Service) PreparePost(raw, collection string) (Post, error) {
	d, err := draft.Parse(strings.NewReader(raw))
	if err != nil {
		return Post{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if collection == "" {
		collection = d.Collection
	}
	return Post{Body: d.Body, Title: d.Title, Collection: collection}, nil
}

// Publish parses raw content into a post and creates it.
//
// When a collection is set it is validated first, and an invalid one aborts
// before the post is created.
func (s *Service) Publish(ctx context.Context, cred Credential, raw, collection string) (Post, string, error) {
	p, err := s.PreparePost(raw, collection)
	if err != nil {
		return Post{}, "", err
	}

	if p.Collection != "" {
		if ok, err := s.ValidateCollection(ctx, cred, p.Collection); !ok {
			return p, "", fmt.Errorf("collection %q is not valid: %w", p.Collection, err)
		}
	}

	id, err := s.CreatePost(ctx, cred, p)
	return p, id, err
}

// ListPosts returns the posts of a collection, newest first, with display
// titles. The instance decides how many posts are sent.
func (s *Service) ListPosts(ctx context.Context, cred Credential, collection string) ([]PostSummary, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: no collection given", ErrInvalidArgument)
	}

	posts, err := s.api.ListPosts(ctx, cred, collection)
	if err != nil {
		return nil, err
	}
	return Summarize(posts), nil
}

// DeletePost removes a post by its ID.
func (s *Service) DeletePost(ctx context.Context, cred Credential, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: no post id given", ErrInvalidArgument)
	}

	if err := s.api.DeletePost(ctx, cred, id); err != nil {
		return err
	}

	s.logger.Info("deleted post", "id", id)
	return nil
}
