// Package config loads typed configuration structs from environment
// variables.
//
// Every component of the backend (HTTP server, MongoDB, email, cookies,
// auth) declares its own Config struct with `env` tags and receives the
// parsed struct by injection at startup. Business logic never reads the
// process environment directly; cmd/server is the only place configuration
// is assembled.
//
// Parsing is backed by github.com/caarlos0/env with an optional .env file
// loaded once via github.com/joho/godotenv for local development.
package config
