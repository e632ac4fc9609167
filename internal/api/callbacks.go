package api

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// The native module pushes data by invoking a function pointer we hand it,
// together with an opaque pointer-sized context value it echoes back
// unmodified. C function pointers cannot carry Go closures, so exactly one
// trampoline address ever crosses the boundary and the context value smuggles
// a Handle that locates the registered closure in a process-wide arena.

// CallbackFunc receives a copy of the NUL-terminated payload the native
// module passed to the trampoline. data is nil when the module passed a null
// pointer.
type CallbackFunc func(data []byte)

// Handle identifies a registered callback. The low 32 bits index a slot in
// the arena, the high 32 bits carry the slot's generation, so a handle kept
// around after its slot was freed and reused can never alias the new
// registration: dispatch on a stale handle is a silent no-op.
type Handle uint64

func newHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// UserData returns the handle as the opaque context value to register with
// the native module alongside TrampolineAddr.
func (h Handle) UserData() uintptr {
	return uintptr(h)
}

type callbackSlot struct {
	fn   CallbackFunc
	gen  uint32
	live bool
}

// One mutex orders every register/unregister/dispatch for the process
// lifetime. Dispatch may run on a thread owned by the native module,
// concurrently with registration from application goroutines.
var (
	cbMu    sync.Mutex
	cbSlots []callbackSlot
	cbFree  []uint32
)

// RegisterCallback stores fn in a free slot and returns its handle. Handles
// stay valid until explicitly unregistered.
func RegisterCallback(fn CallbackFunc) Handle {
	cbMu.Lock()
	defer cbMu.Unlock()

	var index uint32
	if n := len(cbFree); n > 0 {
		index = cbFree[n-1]
		cbFree = cbFree[:n-1]
	} else {
		index = uint32(len(cbSlots))
		cbSlots = append(cbSlots, callbackSlot{})
	}

	slot := &cbSlots[index]
	slot.gen++
	slot.fn = fn
	slot.live = true
	return newHandle(index, slot.gen)
}

// UnregisterCallback frees the handle's slot. It reports whether the handle
// was still live; freeing a stale or unknown handle does nothing.
func UnregisterCallback(h Handle) bool {
	cbMu.Lock()
	defer cbMu.Unlock()

	slot := slotFor(h)
	if slot == nil {
		return false
	}
	slot.fn = nil
	slot.live = false
	cbFree = append(cbFree, h.index())
	return true
}

// slotFor resolves a handle to its live slot. Callers must hold cbMu.
func slotFor(h Handle) *callbackSlot {
	index := h.index()
	if int(index) >= len(cbSlots) {
		return nil
	}
	slot := &cbSlots[index]
	if !slot.live || slot.gen != h.generation() {
		return nil
	}
	return slot
}

// dispatchCallback runs the closure registered under h with a copy of the
// payload. There is no way to report "handle not found" back across the
// boundary, so an unknown handle does nothing. The closure runs with cbMu
// held and must not call RegisterCallback or UnregisterCallback.
func dispatchCallback(h Handle, data uintptr) {
	cbMu.Lock()
	defer cbMu.Unlock()

	slot := slotFor(h)
	if slot == nil {
		return
	}
	slot.fn(goBytes(data))
}

var (
	trampolineOnce sync.Once
	trampolineAddr uintptr
)

// TrampolineAddr returns the address of the single C-callable dispatch
// function. It is created on first use and lives for the process lifetime.
func TrampolineAddr() uintptr {
	trampolineOnce.Do(func() {
		trampolineAddr = purego.NewCallback(func(data uintptr, userData uintptr) uintptr {
			dispatchCallback(Handle(userData), data)
			return 0
		})
	})
	return trampolineAddr
}

// goBytes copies a NUL-terminated C string into a fresh byte slice. The
// native module owns the pointed-to memory only for the duration of the
// callback, so the copy is mandatory.
func goBytes(c uintptr) []byte {
	if c == 0 {
		return nil
	}
	ptr := unsafe.Pointer(c)

	var n uintptr
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return append([]byte(nil), unsafe.Slice((*byte)(ptr), n)...)
}
