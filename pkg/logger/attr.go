package logger

import (
	"fmt"
	"log/slog"
)

// Error wraps an error into a standard attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// UserID records the acting user's identifier.
func UserID(id any) slog.Attr {
	return slog.String("user_id", fmt.Sprintf("%v", id))
}

// Email records an email address involved in the operation.
func Email(email string) slog.Attr {
	return slog.String("email", email)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Endpoint records the HTTP route being served.
func Endpoint(path string) slog.Attr {
	return slog.String("endpoint", path)
}
