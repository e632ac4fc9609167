package types

import (
	"fmt"
)

// UnsupportedPlatformError is returned when the current OS/architecture
// combination cannot run the native market-data module at all. There is no
// way to recover from this at runtime.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

var _ error = (*UnsupportedPlatformError)(nil)

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform %s/%s has no native market-data module", e.OS, e.Arch)
}

// LibraryError is returned when the native module file cannot be loaded or
// the exported call symbol cannot be resolved.
type LibraryError struct {
	Path string
	Msg  string
}

var _ error = (*LibraryError)(nil)

func (e *LibraryError) Error() string {
	if e.Path == "" {
		return "library error: " + e.Msg
	}
	return fmt.Sprintf("library error for %s: %s", e.Path, e.Msg)
}

// InvalidCodeError is returned when a caller-supplied security or block
// code fails local validation before any native call is made.
type InvalidCodeError struct {
	Code string
	Msg  string
}

var _ error = (*InvalidCodeError)(nil)

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code %q: %s", e.Code, e.Msg)
}

// ApiError covers everything that goes wrong while talking to the native
// module: request encoding, response decoding, nonzero native return codes
// and exhausted retries. Code and Method are set when the native module
// rejected the call with an unknown-method or internal error code.
type ApiError struct {
	Msg    string
	Code   int32
	Method string
}

var _ error = (*ApiError)(nil)

func (e *ApiError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("native error code %d for method %q", e.Code, e.Method)
	}
	return e.Msg
}

// BufferTooSmallError reports the native module's -1 return code meaning
// the output buffer could not hold the full response. It is the only error
// kind that callers retry (with a larger buffer).
type BufferTooSmallError struct {
	Capacity int
}

var _ error = (*BufferTooSmallError)(nil)

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("output buffer too small, current size: %.2f MB", float64(e.Capacity)/(1024.0*1024.0))
}
