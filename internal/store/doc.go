// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Operations that must read and write atomically go through a TxRunner,
// which hands the callback a Stores value bound to a single transaction.
package store
