// Package migrations embeds the SQL schema files for each supported backend.
//
// Files are named NNN_name.sql. A file without a feature directive runs once,
// so it may alter existing tables. A file starting with "-- feature: <name>"
// runs on every start while the feature is enabled and must only use
// idempotent statements such as CREATE TABLE IF NOT EXISTS.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
