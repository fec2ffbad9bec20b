// Package binder converts pieces of an HTTP request into typed request
// structs. Each binder is a plain function, so handlers compose them as
// needed:
//
//	var req updateAddressRequest
//	if err := binder.JSON()(r, &req); err != nil { ... }
//	if err := binder.Path(chi.URLParam)(r, &req); err != nil { ... }
//
// JSON binding is strict: wrong content types, unknown fields, and
// trailing documents are all rejected. Path binding is driven by `path`
// struct tags and a router-supplied extractor, keeping the package free of
// a router dependency.
package binder
