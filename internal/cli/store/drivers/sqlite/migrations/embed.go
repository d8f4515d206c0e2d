// Package migrations embeds the token cache schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
