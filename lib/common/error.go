package common

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and optionally the error that caused it.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("SettingsError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("SettingsError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
// This allows errors.Is(err, common.ErrNotSupported) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new Error with the given code and message caused by err.
func WrapError(code RetCode, err error, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrParse         = NewError(RetCParseError, "parse error")
	ErrIO            = NewError(RetCIOError, "io error")
	ErrMalformedData = NewError(RetCMalformedData, "malformed data")
	ErrNotSupported  = NewError(RetCNotSupported, "not supported")
	ErrInvalidValue  = NewError(RetCInvalidValue, "invalid value")
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                // 1: Operation failed due to an internal error.
	RetCParseError                   // 2: The settings document could not be parsed.
	RetCIOError                      // 3: The settings file could not be read, written or deleted.
	RetCMalformedData                // 4: A stored value could not be decoded.
	RetCNotSupported                 // 5: The operation is not implemented.
	RetCInvalidValue                 // 6: A value handed in by the host cannot be encoded.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCParseError:
		return "ParseError"
	case RetCIOError:
		return "IOError"
	case RetCMalformedData:
		return "MalformedData"
	case RetCNotSupported:
		return "NotSupported"
	case RetCInvalidValue:
		return "InvalidValue"
	default:
		return "Unknown"
	}
}
