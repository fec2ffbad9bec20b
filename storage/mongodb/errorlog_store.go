package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/viteshop/backend/pkg/errorlog"
)

const errorLogsCollection = "error_logs"

// ErrorLogStore implements errorlog.Storage on a MongoDB collection.
type ErrorLogStore struct {
	col *mongo.Collection
}

// NewErrorLogStore creates the store on the "error_logs" collection.
func NewErrorLogStore(db *mongo.Database) *ErrorLogStore {
	return &ErrorLogStore{col: db.Collection(errorLogsCollection)}
}

type errorLogDocument struct {
	ErrorType    string    `bson:"error_type"`
	ErrorMessage string    `bson:"error_message,omitempty"`
	UserID       string    `bson:"user_id,omitempty"`
	Email        string    `bson:"email,omitempty"`
	Endpoint     string    `bson:"endpoint,omitempty"`
	Method       string    `bson:"method,omitempty"`
	StatusCode   int       `bson:"status_code,omitempty"`
	IPAddress    string    `bson:"ip_address,omitempty"`
	UserAgent    string    `bson:"user_agent,omitempty"`
	Severity     string    `bson:"severity"`
	Notes        string    `bson:"notes,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (s *ErrorLogStore) SaveEntry(ctx context.Context, entry errorlog.Entry) error {
	doc := errorLogDocument{
		ErrorType:    entry.ErrorType,
		ErrorMessage: entry.ErrorMessage,
		UserID:       entry.UserID,
		Email:        entry.Email,
		Endpoint:     entry.Endpoint,
		Method:       entry.Method,
		StatusCode:   entry.StatusCode,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		Severity:     string(entry.Severity),
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt,
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert error log entry: %w", err)
	}
	return nil
}
