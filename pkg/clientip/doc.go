// Package clientip resolves the originating client IP of an HTTP request,
// looking through the usual proxy headers before falling back to the
// connection's remote address. Candidates are validated so a forged header
// cannot inject arbitrary strings into logs or the error store.
package clientip
