// Package postgres provides PostgreSQL implementations of the store
// interfaces. Every store accepts a store.DBTX, so implementations work
// transparently against a connection pool or an open transaction.
package postgres
