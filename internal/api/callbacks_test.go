package api

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadPtr(s string) uintptr {
	b := append([]byte(s), 0)
	return uintptr(unsafe.Pointer(&b[0]))
}

func TestRegisterDispatchUnregister(t *testing.T) {
	var got []string
	h := RegisterCallback(func(data []byte) {
		got = append(got, string(data))
	})
	defer UnregisterCallback(h)

	dispatchCallback(h, payloadPtr("tick"))
	require.Equal(t, []string{"tick"}, got)

	require.True(t, UnregisterCallback(h))
	dispatchCallback(h, payloadPtr("late"))
	assert.Equal(t, []string{"tick"}, got, "dispatch after unregister must be a no-op")

	assert.False(t, UnregisterCallback(h), "double unregister reports not-live")
}

func TestDispatchNullPayload(t *testing.T) {
	var got []byte = []byte("sentinel")
	h := RegisterCallback(func(data []byte) {
		got = data
	})
	defer UnregisterCallback(h)

	dispatchCallback(h, 0)
	assert.Nil(t, got)
}

func TestStaleHandleCannotAliasReusedSlot(t *testing.T) {
	first := RegisterCallback(func(data []byte) {
		t.Fatal("stale handle invoked the old closure")
	})
	require.True(t, UnregisterCallback(first))

	// The freed slot is reused; the generation tag must differ.
	invoked := 0
	second := RegisterCallback(func(data []byte) {
		invoked++
	})
	defer UnregisterCallback(second)
	require.Equal(t, first.index(), second.index(), "slot should be reused from the free list")
	require.NotEqual(t, first.generation(), second.generation())

	dispatchCallback(first, payloadPtr("stale"))
	assert.Zero(t, invoked, "stale handle must not reach the new registration")

	dispatchCallback(second, payloadPtr("fresh"))
	assert.Equal(t, 1, invoked)
}

func TestDispatchUnknownHandle(t *testing.T) {
	// Out-of-range index: silent no-op.
	dispatchCallback(newHandle(1<<30, 5), payloadPtr("nobody"))
}

func TestHandleEncoding(t *testing.T) {
	h := newHandle(42, 7)
	assert.Equal(t, uint32(42), h.index())
	assert.Equal(t, uint32(7), h.generation())
	assert.Equal(t, uintptr(h), h.UserData())
}

func TestTrampolineAddrStable(t *testing.T) {
	addr := TrampolineAddr()
	require.NotZero(t, addr)
	assert.Equal(t, addr, TrampolineAddr())
}

func TestTrampolineDispatches(t *testing.T) {
	got := ""
	h := RegisterCallback(func(data []byte) {
		got = string(data)
	})
	defer UnregisterCallback(h)

	// Drive the dispatch path the way the trampoline does.
	dispatchCallback(Handle(h.UserData()), payloadPtr("pushed"))
	assert.Equal(t, "pushed", got)
}
