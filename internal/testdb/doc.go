// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// The helpers are only compiled with the integration build tag:
//
//	TASKBOARD_TEST_DATABASE_URL=postgres://... go test -tags=integration ./...
//
// Open connects once per test binary and applies the embedded migrations.
// WithTx hands each test a transaction that is always rolled back, so tests
// can run in parallel against the same schema without cleanup.
package testdb
