package kernel

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorNumber is the closed set of syscall error classifications that may
// cross the guest/host ABI. The number, not the message, is what consensus
// depends on; the message is diagnostics only.
type ErrorNumber int

const (
	ErrIllegalArgument ErrorNumber = iota + 1
	ErrIllegalOperation
	ErrIllegalCodec
	ErrIllegalCid
	ErrNotFound
	ErrForbidden
	ErrLimitExceeded
	ErrReadOnly
	ErrAssertionFailed
	ErrSerialization
)

func (e ErrorNumber) String() string {
	switch e {
	case ErrIllegalArgument:
		return "IllegalArgument"
	case ErrIllegalOperation:
		return "IllegalOperation"
	case ErrIllegalCodec:
		return "IllegalCodec"
	case ErrIllegalCid:
		return "IllegalCid"
	case ErrNotFound:
		return "NotFound"
	case ErrForbidden:
		return "Forbidden"
	case ErrLimitExceeded:
		return "LimitExceeded"
	case ErrReadOnly:
		return "ReadOnly"
	case ErrAssertionFailed:
		return "AssertionFailed"
	case ErrSerialization:
		return "Serialization"
	default:
		return fmt.Sprintf("ErrorNumber(%d)", int(e))
	}
}

// SyscallError is a recoverable error: it crosses the ABI as a classified
// ErrorNumber and is catchable by the guest actor.
type SyscallError struct {
	Number  ErrorNumber
	Message string
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Number, e.Message)
}

func syscallErr(n ErrorNumber, format string, args ...interface{}) *SyscallError {
	return &SyscallError{Number: n, Message: fmt.Sprintf(format, args...)}
}

// FatalError aborts the entire message. It is never handed to the guest;
// it indicates store corruption or an internal invariant violated despite
// prior checks.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string  { return "fatal: " + e.Err.Error() }
func (e *FatalError) Unwrap() error  { return e.Err }

func fatalf(format string, args ...interface{}) error {
	return &FatalError{Err: xerrors.Errorf(format, args...)}
}

func fatalWrap(err error, context string) error {
	return &FatalError{Err: xerrors.Errorf("%s: %w", context, err)}
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var f *FatalError
	return xerrors.As(err, &f)
}
