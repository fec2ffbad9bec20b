// Package errorlog records application errors with their request context
// into a persistent store for later inspection.
//
// Recording is best-effort: the Recorder swallows storage failures after
// logging them, recovers from panics, and runs each write on its own
// deadline detached from the (possibly cancelled) request context. A broken
// error store never breaks the request that triggered the entry.
//
// Usage:
//
//	recorder := errorlog.NewRecorder(store, errorlog.WithLogger(log))
//	recorder.RecordHTTP(r, "SignupError", err, http.StatusInternalServerError, "", email)
package errorlog
