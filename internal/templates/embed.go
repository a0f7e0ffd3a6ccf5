package templates

import "embed"

//go:embed assets
var assetsFS embed.FS
