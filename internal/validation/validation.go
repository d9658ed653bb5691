// Package validation binds and validates request payloads.
//
// It uses the go-playground validator library to enforce rules declared in
// struct tags (required fields, email formats, value ranges) and converts
// validation failures into the field-level error format clients expect.
package validation

import "github.com/go-playground/validator/v10"

// validate is the shared validator instance. The library caches struct
// metadata internally, so a single instance serves the whole process.
var validate = validator.New()

// Struct runs tag-based validation on a request payload. Request types
// call it from their Validate method.
func Struct(v any) error {
	return validate.Struct(v)
}
