package auth

import "embed"

// Migrations holds the schema for the users table, applied with goose at
// startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
