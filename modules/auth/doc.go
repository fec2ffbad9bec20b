// Package auth exposes account management over HTTP: signup, signin,
// logout, the password-reset flow, and identity-guarded profile and
// address mutation.
//
// The module is a chi router meant to be mounted at /auth:
//
//	m := auth.New(cfg, service, tokens, cookies, mailer,
//		auth.WithLogger(log),
//		auth.WithErrorRecorder(recorder),
//	)
//	r.Mount("/auth", m.Handle())
//
// Session tokens travel either as an Authorization bearer header or in the
// "authToken" cookie; the bearer header wins when both are present. The
// guarded endpoints additionally require the authenticated user to be the
// one named in the URL path.
package auth
