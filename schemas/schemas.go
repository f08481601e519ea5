// Package schemas хранит JSON-схемы тел запросов мутаций.
package schemas

import "embed"

//go:embed requests
var SchemasFS embed.FS
