// Package mongo manages the MongoDB connection for the backend.
//
// It wraps the official driver with environment-driven configuration,
// retrying connection setup during startup and exposing a Healthcheck probe
// for the /healthz endpoint. Collection-level access lives in
// storage/mongodb; this package only hands out connected clients.
package mongo
