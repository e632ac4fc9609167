package hqvm

import (
	"sync"

	"github.com/hqsdk/hqvm/internal/api"
)

// Callback owns one entry in the process-wide callback registry. Release it
// when the native module can no longer invoke it; releasing exactly once is
// guaranteed no matter how often Release is called.
type Callback struct {
	handle  api.Handle
	release sync.Once
}

// RegisterCallback registers fn to be invoked when the native module calls
// the trampoline with this callback's context value. fn receives a copy of
// the NUL-terminated payload (nil for a null pointer) and must not register
// or release callbacks itself.
func RegisterCallback(fn func(data []byte)) *Callback {
	return &Callback{handle: api.RegisterCallback(api.CallbackFunc(fn))}
}

// UserData is the opaque pointer-sized context value to hand to the native
// module together with TrampolineAddr. The module echoes it back unmodified
// on every invocation.
func (c *Callback) UserData() uintptr {
	return c.handle.UserData()
}

// Release removes the callback from the registry. Invocations arriving after
// Release are dropped silently.
func (c *Callback) Release() {
	c.release.Do(func() {
		api.UnregisterCallback(c.handle)
	})
}

// TrampolineAddr returns the address of the single C-callable dispatch
// function shared by all registered callbacks.
func TrampolineAddr() uintptr {
	return api.TrampolineAddr()
}
