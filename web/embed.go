// Package web embeds the static gallery and control panel pages.
package web

import "embed"

// FS holds the embedded static directory contents.
//
//go:embed all:static
var FS embed.FS
