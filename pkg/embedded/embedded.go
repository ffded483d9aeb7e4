// Package embedded provides the static frontend assets embedded in the Go
// binary. The pages call the JSON API and render charts client-side.
package embedded

import (
	"embed"
)

//go:embed frontend
var Files embed.FS
