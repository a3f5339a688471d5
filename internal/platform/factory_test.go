package platform_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/writego/internal/platform"
	"github.com/aretw0/writego/internal/testutil"
	"github.com/aretw0/writego/pkg/core"
)

func setupService(t *testing.T, opts ...platform.Option) (*core.Service, *testutil.FakeAPI, string) {
	t.Helper()

	api := testutil.NewFakeAPI(t)
	api.AddUser("alice", "secret")
	api.AddCollection("blog")

	dir := t.TempDir()
	baseOpts := []platform.Option{
		platform.WithConfigDir(dir),
		platform.WithHTTPClient(api.HTTPClient()),
	}
	svc, err := platform.New(append(baseOpts, opts...)...)
	require.NoError(t, err)
	return svc, api, dir
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, api, dir := setupService(t)

	cred, err := svc.Login(ctx, api.Instance(), "alice", "secret")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "config.json"))

	saved, err := svc.Credential()
	require.NoError(t, err)
	assert.Equal(t, cred, saved)

	ok, err := svc.ValidateCollection(ctx, cred, "blog")
	require.NoError(t, err)
	assert.True(t, ok)

	id, err := svc.CreatePost(ctx, cred, core.Post{Body: "hello", Title: "Hi", Collection: "blog"})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, cred, "blog")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, id, posts[0].ID)
	assert.Equal(t, "Hi", posts[0].Title)

	require.NoError(t, svc.DeletePost(ctx, cred, id))
	assert.Empty(t, api.Posts("blog"))

	report, err := svc.LogoutSaved(ctx)
	require.NoError(t, err)
	assert.True(t, report.Invalidated)
	assert.False(t, api.TokenValid(cred.AccessToken))
	assert.NoFileExists(t, filepath.Join(dir, "config.json"))
}

func TestNew_ConfigFile(t *testing.T) {
	svc, api, dir := setupService(t, platform.WithConfigFile("alt.json"))

	_, err := svc.Login(context.Background(), api.Instance(), "alice", "secret")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "alt.json"))
}

type memStore struct{ cred *core.Credential }

func (m *memStore) Save(c core.Credential) error {
	m.cred = &c
	return nil
}

func (m *memStore) Load() (core.Credential, error) {
	if m.cred == nil {
		return core.Credential{}, &core.ConfigMissingError{Reason: "no config file"}
	}
	return *m.cred, nil
}

func (m *memStore) Delete() error {
	m.cred = nil
	return nil
}

func TestNew_WithStore(t *testing.T) {
	store := &memStore{}
	svc, api, dir := setupService(t, platform.WithStore(store))

	_, err := svc.Login(context.Background(), api.Instance(), "alice", "secret")
	require.NoError(t, err)
	require.NotNil(t, store.cred)
	assert.NoFileExists(t, filepath.Join(dir, "config.json"))

	state := svc.State().(core.ServiceState)
	assert.True(t, state.LoggedIn)
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()

	p, err := platform.ConfigPath(platform.WithConfigDir(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), p)

	p, err = platform.ConfigPath(platform.WithConfigDir(dir), platform.WithConfigFile("x.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.json"), p)

	p, err = platform.ConfigPath(platform.WithStore(&memStore{}))
	require.NoError(t, err)
	assert.Empty(t, p)
}
