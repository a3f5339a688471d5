// Package testutil provides a fake WriteFreely instance for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

// A request recorded by the fake instance.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string

	// The recorded request body.
	//
	// The server closes the body when it has finished processing the request,
	// so it is copied here.
	Body []byte
}

// FakePost is a post stored by the fake instance.
type FakePost struct {
	ID      string    `json:"id"`
	Title   string    `json:"title,omitempty"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}

type cannedResponse struct {
	status int
	body   string
}

// FakeAPI is an in-process HTTPS server emulating the parts of the
// WriteFreely API the client uses. Handlers run on server goroutines, so all
// state is guarded by mu.
type FakeAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	users       map[string]string
	tokens      map[string]string
	collections map[string][]FakePost
	personal    []FakePost
	requests    []RecordedRequest
	canned      map[string]cannedResponse
	nextID      int
}

// NewFakeAPI starts a fake instance. It is closed when the test ends.
//
// ```go
// func Test(t *testing.T) {
//     api := testutil.NewFakeAPI(t)
//     api.AddUser("alice", "secret")
//
//     client := writefreely.New(writefreely.Config{HTTPClient: api.HTTPClient()})
//     token, err := client.Login(ctx, api.Instance(), "alice", "secret")
// }
// ```
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		users:       make(map[string]string),
		tokens:      make(map[string]string),
		collections: make(map[string][]FakePost),
		canned:      make(map[string]cannedResponse),
	}

	// Match on the escaped path so names containing '/' stay one segment.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(f.record)
	r.HandleFunc("/api/auth/login", f.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", f.authed(f.logout)).Methods(http.MethodDelete)
	r.HandleFunc("/api/collections/{alias}", f.authed(f.getCollection)).Methods(http.MethodGet)
	r.HandleFunc("/api/collections/{alias}/posts", f.authed(f.listPosts)).Methods(http.MethodGet)
	r.HandleFunc("/api/collections/{alias}/posts", f.authed(f.createPost)).Methods(http.MethodPost)
	r.HandleFunc("/api/posts", f.authed(f.createPost)).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}", f.authed(f.deletePost)).Methods(http.MethodDelete)

	f.Server = httptest.NewTLSServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// Instance is the host:port of the fake instance, without scheme.
func (f *FakeAPI) Instance() string {
	return strings.TrimPrefix(f.Server.URL, "https://")
}

// HTTPClient trusts the fake instance's certificate.
func (f *FakeAPI) HTTPClient() *http.Client {
	return f.Server.Client()
}

// AddUser registers a login.
func (f *FakeAPI) AddUser(alias, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[alias] = password
}

// AddToken makes a token valid without a login.
func (f *FakeAPI) AddToken(token, alias string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = alias
}

// TokenValid reports whether the instance still accepts the token.
func (f *FakeAPI) TokenValid(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok
}

// AddCollection creates a collection holding posts.
func (f *FakeAPI) AddCollection(alias string, posts ...FakePost) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[alias] = append(f.collections[alias], posts...)
}

// Posts returns the posts of a collection, or the uncollected posts for "".
func (f *FakeAPI) Posts(alias string) []FakePost {
	f.mu.Lock()
	defer f.mu.Unlock()
	if alias == "" {
		return append([]FakePost(nil), f.personal...)
	}
	return append([]FakePost(nil), f.collections[alias]...)
}

// Respond makes every request to method and path answer with the given
// status and raw body, bypassing the emulation.
func (f *FakeAPI) Respond(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canned[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns every request received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request and fails the test if none.
func (f *FakeAPI) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatal("no request reached the fake instance")
	}
	return reqs[len(reqs)-1]
}

// UnreachableInstance returns a host:port nothing listens on.
func UnreachableInstance(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		canned, ok := f.canned[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(canned.status)
			io.WriteString(w, canned.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
		if ok && f.TokenValid(token) {
			h(w, r)
			return
		}
		writeError(w, http.StatusUnauthorized, "Invalid access token.")
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Alias string `json:"alias"`
		Pass  string `json:"pass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request.")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if pass, ok := f.users[req.Alias]; !ok || pass != req.Pass {
		writeError(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}

	token := fmt.Sprintf("token-%s-%d", req.Alias, len(f.tokens)+1)
	f.tokens[token] = req.Alias
	writeData(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         map[string]string{"username": req.Alias},
	})
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Token ")

	f.mu.Lock()
	delete(f.tokens, token)
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) getCollection(w http.ResponseWriter, r *http.Request) {
	alias, _ := pathVar(r, "alias")

	f.mu.Lock()
	posts, ok := f.collections[alias]
	f.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Collection not found.")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"alias": alias, "total_posts": len(posts)})
}

func (f *FakeAPI) listPosts(w http.ResponseWriter, r *http.Request) {
	alias, _ := pathVar(r, "alias")

	f.mu.Lock()
	posts, ok := f.collections[alias]
	posts = append([]FakePost(nil), posts...)
	f.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Collection not found.")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"alias": alias, "posts": posts})
}

func (f *FakeAPI) createPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body  string `json:"body"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
		writeError(w, http.StatusBadRequest, "Post body is required.")
		return
	}

	alias, collected := pathVar(r, "alias")

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.collections[alias]; collected && !ok {
		writeError(w, http.StatusNotFound, "Collection not found.")
		return
	}

	f.nextID++
	post := FakePost{
		ID:      fmt.Sprintf("post%04d", f.nextID),
		Title:   req.Title,
		Body:    req.Body,
		Created: time.Now().UTC().Truncate(time.Second),
	}
	if collected {
		f.collections[alias] = append(f.collections[alias], post)
	} else {
		f.personal = append(f.personal, post)
	}
	writeData(w, http.StatusCreated, post)
}

func (f *FakeAPI) deletePost(w http.ResponseWriter, r *http.Request) {
	id, _ := pathVar(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()

	if removePost(&f.personal, id) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	for alias, posts := range f.collections {
		if removePost(&posts, id) {
			f.collections[alias] = posts
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Post not found.")
}

func removePost(posts *[]FakePost, id string) bool {
	for i, p := range *posts {
		if p.ID == id {
			*posts = append((*posts)[:i], (*posts)[i+1:]...)
			return true
		}
	}
	return false
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"code": status, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"code": status, "error_msg": msg})
}

// pathVar returns the unescaped route variable, since the router matches on
// the encoded path.
func pathVar(r *http.Request, name string) (string, bool) {
	v, ok := mux.Vars(r)[name]
	if !ok {
		return "", false
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}
	return v, true
}
