// Package db embeds the DDL schema applied at startup and by the
// integration test harness.
package db

import _ "embed"

// Schema is the full DDL for the application tables.
//
//go:embed schema.sql
var Schema string
