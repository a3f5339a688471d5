package writefreely

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aretw0/writego/pkg/core"
)

type createPostRequest struct {
	Body  string `json:"body"`
	Title string `json:"title,omitempty"`
}

type createPostData struct {
	ID string `json:"id"`
}

type remotePost struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}

type listPostsData struct {
	Posts []remotePost `json:"posts"`
}

func collectionPath(alias string) string {
	return "/api/collections/" + url.PathEscape(alias)
}

// GetCollection checks that the collection exists: only 200 succeeds.
func (c *Client) GetCollection(ctx context.Context, cred core.Credential, alias string) error {
	const op = "get collection"

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		instance: cred.Instance,
		path:     collectionPath(alias),
		token:    cred.AccessToken,
	})
	if err != nil {
		return err
	}
	return expect(op, resp, http.StatusOK)
}

// CreatePost publishes to the collection, or as an uncollected post when
// p.Collection is empty, and returns the new post's ID.
func (c *Client) CreatePost(ctx context.Context, cred core.Credential, p core.Post) (string, error) {
	const op = "create post"

	path := "/api/posts"
	if p.Collection != "" {
		path = collectionPath(p.Collection) + "/posts"
	}

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodPost,
		instance: cred.Instance,
		path:     path,
		token:    cred.AccessToken,
		body:     createPostRequest{Body: p.Body, Title: p.Title},
	})
	if err != nil {
		return "", err
	}
	if err := expect(op, resp, http.StatusCreated); err != nil {
		return "", err
	}

	var data createPostData
	if err := decodeData(op, resp, &data); err != nil {
		return "", err
	}
	if data.ID == "" {
		return "", &core.MalformedResponseError{Op: op, Reason: "no post id"}
	}
	return data.ID, nil
}

// ListPosts returns the posts of a collection in the order the instance sent
// them. The instance caps how many are returned.
func (c *Client) ListPosts(ctx context.Context, cred core.Credential, collection string) ([]core.RemotePost, error) {
	const op = "list posts"

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		instance: cred.Instance,
		path:     collectionPath(collection) + "/posts",
		token:    cred.AccessToken,
	})
	if err != nil {
		return nil, err
	}
	if err := expect(op, resp, http.StatusOK); err != nil {
		return nil, err
	}

	var data listPostsData
	if err := decodeData(op, resp, &data); err != nil {
		return nil, err
	}

	posts := make([]core.RemotePost, 0, len(data.Posts))
	for _, p := range data.Posts {
		posts = append(posts, core.RemotePost{
			ID:      p.ID,
			Title:   p.Title,
			Body:    p.Body,
			Created: p.Created,
		})
	}
	return posts, nil
}

// DeletePost removes a post with DELETE /api/posts/{id}. Only 204 succeeds.
func (c *Client) DeletePost(ctx context.Context, cred core.Credential, id string) error {
	const op = "delete post"

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodDelete,
		instance: cred.Instance,
		path:     "/api/posts/" + url.PathEscape(id),
		token:    cred.AccessToken,
	})
	if err != nil {
		return err
	}
	return expect(op, resp, http.StatusNoContent)
}
