// Package schema contains embedded migration files.
package schema

import (
	"embed"
	"io/fs"
)

//go:embed pgmigrations/*.sql
var migrationsFS embed.FS

// PostgresMigrations returns the goose migrations rooted at their directory.
func PostgresMigrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "pgmigrations")
	if err != nil {
		panic(err)
	}
	return sub
}
