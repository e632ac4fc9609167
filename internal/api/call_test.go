package api

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqsdk/hqvm/types"
)

// fakeModule builds a Module whose call symbol is a Go function. The fake
// receives the decoded input envelope and a writable view of the output
// buffer, exactly what the native module sees.
func fakeModule(fn func(input string, output []byte) int32) *Module {
	return &Module{
		version: "test",
		call: func(input, output uintptr, capacity int32, reserved uintptr) int32 {
			in := string(goBytes(input))
			out := unsafe.Slice((*byte)(unsafe.Pointer(output)), int(capacity))
			return fn(in, out)
		},
	}
}

func TestEncodeRequest(t *testing.T) {
	assert.Equal(t, `{"method":"connect","params":{"username":"u"}}`, EncodeRequest("connect", `{"username":"u"}`))
	assert.Equal(t, `{"method":"ipo_today","params":}`, EncodeRequest("ipo_today", ""))
}

func TestCallSuccessDecodesResponse(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		require.Equal(t, `{"method":"help","params":"klines"}`, input)
		copy(output, `{"err_info":"","payload":{"result":"usage"}}`+"\x00")
		return 0
	})

	resp, err := Call[types.Response](m, "help", `"klines"`, 1024)
	require.NoError(t, err)
	assert.Empty(t, resp.ErrInfo)
	text, ok := resp.Payload.ResultString()
	require.True(t, ok)
	assert.Equal(t, "usage", text)
}

func TestCallEmptyOutputIsCanonicalEmptyEnvelope(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		// The module wrote nothing at all.
		return 0
	})

	resp, err := Call[types.Response](m, "disconnect", "", 64)
	require.NoError(t, err)
	assert.Equal(t, "", resp.ErrInfo)
	assert.Empty(t, resp.Payload.Result)
	assert.Empty(t, resp.Payload.DictExtra)
}

func TestCallBufferTooSmall(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		return -1
	})

	_, err := Call[types.Response](m, "klines", `{}`, 512)
	var tooSmall *types.BufferTooSmallError
	require.ErrorAs(t, err, &tooSmall)
	assert.Equal(t, 512, tooSmall.Capacity)
}

func TestCallNativeErrorCode(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		return 7
	})

	_, err := Call[types.Response](m, "no_such_method", "", 64)
	var apiErr *types.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, int32(7), apiErr.Code)
	assert.Equal(t, "no_such_method", apiErr.Method)
}

func TestCallRejectsEmbeddedNul(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		t.Fatal("native call must not run for a request with an embedded NUL")
		return 0
	})

	_, err := m.Call("connect", "\"a\x00b\"", 64)
	var apiErr *types.ApiError
	require.ErrorAs(t, err, &apiErr)
}

func TestCallMalformedOutput(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		copy(output, "not json\x00")
		return 0
	})

	_, err := Call[types.Response](m, "help", "", 64)
	var apiErr *types.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "decoding response")
}

func TestCallOutputTruncatedAtNul(t *testing.T) {
	m := fakeModule(func(input string, output []byte) int32 {
		copy(output, `{"err_info":"x","payload":{}}`+"\x00garbage")
		return 0
	})

	resp, err := Call[types.Response](m, "connect", "{}", 64)
	require.NoError(t, err)
	assert.Equal(t, "x", resp.ErrInfo)
}

func TestClen(t *testing.T) {
	assert.Equal(t, 0, clen([]byte{0, 'a'}))
	assert.Equal(t, 2, clen([]byte{'a', 'b', 0}))
	assert.Equal(t, 3, clen([]byte("abc")))
}
