// Package jwt issues and verifies the backend's session tokens.
//
// A session token is a signed, self-contained assertion of
// {userID, issuedAt, expiresAt} with a 7-day default lifetime. Nothing is
// stored server-side: validity is signature correctness plus expiry at check
// time, and logout only clears the client-held cookie.
//
// Tokens travel either as an "Authorization: Bearer" header or as the
// authToken cookie; HeaderOrCookieExtractor accepts both, preferring the
// header. Middleware turns verification into a request-gating capability
// that injects the acting user ID into the request context.
package jwt
