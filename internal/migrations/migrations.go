package migrations

import "embed"

// FS holds the registered Go migrations so goose can enumerate them without
// depending on the working directory.
//
//go:embed 2*.go
var FS embed.FS
