// Package migrations expone los scripts SQL del esquema embebidos en el binario.
package migrations

import "embed"

// FS contiene los archivos NNN_nombre.sql; se aplican en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS
