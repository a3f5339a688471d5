// Package writego is the composition root of the writego client.
//
// It wires the core service (login, logout and post management against a
// WriteFreely instance) to the JSON credential file and the HTTP adapter.
//
// Usage:
//
//	svc, err := writego.New(
//		writego.WithConfigDir(dir),
//		writego.WithLogger(logger),
//	)
//
//	cred, err := svc.Login(ctx, "write.as", "alice", password)
//	id, err := svc.CreatePost(ctx, cred, core.Post{Body: "Hello", Collection: "blog"})
package writego
