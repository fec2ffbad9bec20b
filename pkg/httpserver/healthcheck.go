package httpserver

import (
	"context"
	"net/http"
	"time"
)

// HealthcheckFunc reports the health of a single dependency.
type HealthcheckFunc func(context.Context) error

// HealthcheckHandler builds an HTTP handler that runs the given checks and
// responds 200 when all pass or 503 when any fails. Each invocation is
// bounded by a short timeout so a stuck dependency cannot hold the probe.
func HealthcheckHandler(checks ...HealthcheckFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
