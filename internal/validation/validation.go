// Package validation binds and validates request payloads.
//
// Constraints live in `validate` struct tags and are checked with
// go-playground/validator. Failures are turned into a 400 *errs.HTTPError
// carrying one FieldError per offending field.
package validation
