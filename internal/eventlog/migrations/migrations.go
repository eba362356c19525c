// Package migrations embeds the eventlog schema for goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
