package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/hqsdk/hqvm/types"
)

// Caller is the call boundary as seen from above: one synchronous exchange
// of a request envelope for raw response bytes. *Module is the production
// implementation; tests substitute fakes.
type Caller interface {
	Call(method, params string, capacity int) ([]byte, error)
}

var _ Caller = (*Module)(nil)

// emptyResponse is what an empty native output decodes as. The module
// writes nothing at all for some successful calls; that is success, not an
// error.
const emptyResponse = `{"err_info":"","payload":{}}`

// EncodeRequest builds the request envelope. params must already be valid
// raw JSON (or empty); it is spliced in verbatim, matching what the native
// module parses.
func EncodeRequest(method, params string) string {
	return fmt.Sprintf(`{"method":"%s","params":%s}`, method, params)
}

// Call performs one native call with an output buffer of the given
// capacity. The returned bytes are the response up to the first NUL. Return
// code 0 is success, -1 becomes a BufferTooSmallError for the caller to
// retry with a larger buffer, anything else is an ApiError carrying the
// code. No raw pointer escapes this function.
func (m *Module) Call(method, params string, capacity int) ([]byte, error) {
	req := EncodeRequest(method, params)
	if strings.IndexByte(req, 0) >= 0 {
		return nil, &types.ApiError{Msg: fmt.Sprintf("request for method %q contains a NUL byte", method)}
	}
	if capacity < 1 {
		capacity = 1
	}

	input := make([]byte, len(req)+1)
	copy(input, req)
	output := make([]byte, capacity)

	code := m.call(
		uintptr(unsafe.Pointer(&input[0])),
		uintptr(unsafe.Pointer(&output[0])),
		int32(capacity),
		0,
	)
	runtime.KeepAlive(input)

	switch code {
	case 0:
		return output[:clen(output)], nil
	case -1:
		return nil, &types.BufferTooSmallError{Capacity: capacity}
	default:
		return nil, &types.ApiError{Code: code, Method: method}
	}
}

// Call invokes the method through c and JSON-decodes the response into T.
// An empty output is decoded as the canonical empty envelope.
func Call[T any](c Caller, method, params string, capacity int) (T, error) {
	var decoded T
	out, err := c.Call(method, params, capacity)
	if err != nil {
		return decoded, err
	}
	if len(out) == 0 {
		out = []byte(emptyResponse)
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		return decoded, &types.ApiError{Msg: fmt.Sprintf("decoding response for method %q: %s", method, err)}
	}
	return decoded, nil
}

// clen returns the length of b up to the first NUL byte.
func clen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}
