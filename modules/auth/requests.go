package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viteshop/backend/pkg/binder"
)

var (
	jsonBinder = binder.JSON()
	pathBinder = binder.Path(chi.URLParam)
)

func bindJSON(r *http.Request, v any) error { return jsonBinder(r, v) }

func bindPath(r *http.Request, v any) error { return pathBinder(r, v) }
