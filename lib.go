// Package hqvm provides Go bindings for the THS market-data native module.
//
// The module is a closed-source shared library exporting a single call
// symbol that exchanges JSON envelopes through a caller-supplied output
// buffer. This package hides that boundary behind a Session with safe
// connect/disconnect semantics, adaptive output-buffer growth for queries of
// unpredictable size, and a registry for callbacks the module pushes data
// through.
package hqvm

import (
	"github.com/hqsdk/hqvm/types"
)

// Re-exported wire types so simple callers only import this package.
type (
	Response       = types.Response
	Payload        = types.Payload
	SessionOptions = types.SessionOptions
)
