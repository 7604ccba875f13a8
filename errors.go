package sfdd

import "github.com/pkg/errors"

// fatalf panics with a stack-carrying error. Every call site here guards
// an invariant this package itself is responsible for (O1 key ordering
// at construction, an unreachable switch arm); none of them are
// recoverable input-validation errors a caller could work around, so
// there is nothing to return an error value for.
func fatalf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}
