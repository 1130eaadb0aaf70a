package errors

import (
	"errors"
)

// MetaBreadcrumb is the metadata key holding the table path at the point a
// resolution failed
const MetaBreadcrumb = "breadcrumb"

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error. Errors that did not come
// from this package are reported as CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]any {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// Breadcrumb returns the table path recorded on a resolution error, or nil
func Breadcrumb(err error) []string {
	path, _ := GetMeta(err)[MetaBreadcrumb].([]string)
	return path
}

// IsNotFound reports a missing table
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports bad settings or a malformed table
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsCycleOrTooDeep reports a table chain that hit the depth limit
func IsCycleOrTooDeep(err error) bool {
	return GetCode(err) == CodeCycleOrTooDeep
}

// IsUnavailable reports a backing store that could not be reached
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}
