package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Path returns a binder that fills struct fields from URL path parameters
// using the provided extractor (chi.URLParam for the chi router).
//
// Field mapping follows the `path` struct tag:
//   - `path:"name"` binds the field to parameter "name"
//   - `path:"-"` skips the field
//   - untagged fields use the lowercased field name
//
// Example:
//
//	type DeleteAddressRequest struct {
//		UserID    string `path:"userId"`
//		AddressID string `path:"addressId"`
//	}
//
//	r.Post("/delete-address/{userId}/{addressId}", ...)
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidPath)
		}

		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
		}

		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := fieldTagName(rt.Field(i), "path")
			if skip {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, rt.Field(i).Name, err)
			}
		}

		return nil
	}
}

// fieldTagName resolves the parameter name for a struct field.
func fieldTagName(f reflect.StructField, tag string) (name string, skip bool) {
	v, ok := f.Tag.Lookup(tag)
	if !ok {
		return strings.ToLower(f.Name), false
	}
	if v == "-" {
		return "", true
	}
	if idx := strings.Index(v, ","); idx != -1 {
		v = v[:idx]
	}
	if v == "" {
		return strings.ToLower(f.Name), false
	}
	return v, false
}

// setFieldValue converts a raw string into the field's type.
func setFieldValue(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Ptr:
		elem := reflect.New(field.Type().Elem())
		if err := setFieldValue(elem.Elem(), raw); err != nil {
			return err
		}
		field.Set(elem)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
