package writego

import (
	_ "embed"
)

// Version is the release of the library and the writego binary.
// It may carry a trailing newline; trim it before display.
//
//go:embed VERSION
var Version string
