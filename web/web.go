// Package web holds the page templates compiled into the binary.
package web

import "embed"

//go:embed templates
var Templates embed.FS
