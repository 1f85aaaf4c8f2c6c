// Package appfs holds the files embedded into every binary: SQL migrations and the catalog dataset.
package appfs

import "embed"

//go:embed migrations/*.sql catalog/*.yaml
var FS embed.FS
