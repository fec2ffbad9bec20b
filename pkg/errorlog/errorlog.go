package errorlog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/viteshop/backend/pkg/clientip"
	"github.com/viteshop/backend/pkg/logger"
)

// Severity classifies how urgently an entry needs attention.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Entry is a single recorded application error with its request context.
type Entry struct {
	ErrorType    string
	ErrorMessage string
	UserID       string
	Email        string
	Endpoint     string
	Method       string
	StatusCode   int
	IPAddress    string
	UserAgent    string
	Severity     Severity
	Notes        string
	CreatedAt    time.Time
}

// Storage persists error entries.
type Storage interface {
	SaveEntry(ctx context.Context, entry Entry) error
}

// recordTimeout bounds a single persistence attempt so a slow store cannot
// hold up request handling.
const recordTimeout = 5 * time.Second

// Recorder writes error entries to storage on a best-effort basis. Failures
// to persist are logged and swallowed; recording an error must never make
// the original request worse.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRecorder creates a best-effort error recorder.
func NewRecorder(storage Storage, opts ...Option) *Recorder {
	r := &Recorder{
		storage: storage,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record persists the entry, filling in defaults for severity and creation
// time. It never returns an error and never panics.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while recording error entry",
				slog.Any("panic", rec),
				logger.Component("errorlog"),
			)
		}
	}()

	if entry.Severity == "" {
		entry.Severity = SeverityMedium
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	// The request context may already be cancelled by the time the error
	// is recorded, so persistence runs on its own deadline.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.storage.SaveEntry(saveCtx, entry); err != nil {
		r.logger.Error("failed to record error entry",
			logger.Error(err),
			slog.String("error_type", entry.ErrorType),
			logger.Endpoint(entry.Endpoint),
			logger.Component("errorlog"),
		)
	}
}

// RecordHTTP builds an entry from an in-flight request and records it.
func (r *Recorder) RecordHTTP(req *http.Request, errType string, err error, statusCode int, userID, email string) {
	entry := Entry{
		ErrorType:  errType,
		UserID:     userID,
		Email:      email,
		Endpoint:   req.URL.Path,
		Method:     req.Method,
		StatusCode: statusCode,
		IPAddress:  clientip.GetIP(req),
		UserAgent:  req.UserAgent(),
		Severity:   severityForStatus(statusCode),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}
	r.Record(req.Context(), entry)
}

func severityForStatus(status int) Severity {
	switch {
	case status >= http.StatusInternalServerError:
		return SeverityHigh
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
