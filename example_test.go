package writego_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/writego"
	"github.com/aretw0/writego/pkg/core"
)

// Example_configPath shows where the credential file is kept.
func Example_configPath() {
	tmpDir, err := os.MkdirTemp("", "writego-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path, err := writego.ConfigPath(writego.WithConfigDir(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(filepath.Base(path))
	// Output:
	// config.json
}

// Example_loggedOut shows the error a fresh config directory yields.
func Example_loggedOut() {
	tmpDir, err := os.MkdirTemp("", "writego-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := writego.New(writego.WithConfigDir(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	_, err = svc.Credential()
	fmt.Println(core.IsConfigMissing(err))
	// Output:
	// true
}
