// Package errs provides the typed error kinds shared by the domain and adapters.
//
// Each kind follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying details (parameter name, id, cause) usable with errors.As
//   - New... and New...WithCause constructors
//
// Adapters translate storage misses into ObjectNotFoundError, and the HTTP layer maps
// the sentinels onto status codes.
package errs
