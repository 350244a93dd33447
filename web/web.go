// Package web holds the embedded viewer assets.
package web

import _ "embed"

// IndexHTML is the single-page dataset viewer.
//
//go:embed index.html
var IndexHTML []byte
