// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// Queries are built with squirrel and scanned with sqlx over the pgx
// database/sql driver. The schema lives in embedded goose migrations.
package postgres
