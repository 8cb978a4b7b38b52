// Package web embeds the static dashboard page served at the context root.
package web

import "embed"

//go:embed index.html
var Static embed.FS
