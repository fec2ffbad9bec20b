// Package mongodb provides the MongoDB-backed storage implementations:
// auth.UserStorage on the "users" collection and errorlog.Storage on
// "error_logs".
//
// Email uniqueness is enforced by a unique index (see
// UserStore.EnsureIndexes); reset-token consumption and address
// replacement are single conditional document writes, so the domain
// layer's concurrency guarantees hold without transactions.
package mongodb
