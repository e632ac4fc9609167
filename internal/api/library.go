package api

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/hqsdk/hqvm/types"
)

// callFn matches the single exported entry point of the native module:
//
//	int32_t Call(const char *input, char *output, int32_t output_capacity, const void *reserved);
//
// input is a NUL-terminated UTF-8 JSON request envelope, output is a
// caller-owned buffer the module fills with a NUL-terminated UTF-8 JSON
// response. reserved is always passed as 0.
type callFn func(input uintptr, output uintptr, capacity int32, reserved uintptr) int32

// callSymbol is the only symbol this layer ever resolves.
const callSymbol = "Call"

// Module owns the loaded native module and its resolved call symbol. It is
// loaded at most once per process and never unloaded.
type Module struct {
	version string
	handle  uintptr
	call    callFn
}

var (
	loadMu sync.Mutex
	loaded *Module
)

// LoadModule loads the native module for the given version string and
// resolves its call symbol. The first successful load wins for the rest of
// the process: a later call with the same version (or an empty one) returns
// the cached module, a later call with a different version fails with a
// LibraryError instead of silently handing out the wrong module.
func LoadModule(version string) (*Module, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded != nil {
		if version == "" || version == loaded.version {
			return loaded, nil
		}
		return nil, &types.LibraryError{
			Msg: fmt.Sprintf("module version %q already loaded in this process, cannot load %q", loaded.version, version),
		}
	}

	path, err := LibraryPath(version)
	if err != nil {
		return nil, err
	}

	handle, err := openLibrary(path)
	if err != nil {
		return nil, &types.LibraryError{Path: path, Msg: err.Error()}
	}
	if _, err := resolveSymbol(handle, callSymbol); err != nil {
		return nil, &types.LibraryError{Path: path, Msg: fmt.Sprintf("resolving symbol %q: %s", callSymbol, err)}
	}

	m := &Module{version: version, handle: handle}
	purego.RegisterLibFunc(&m.call, handle, callSymbol)
	loaded = m
	return m, nil
}

// Version returns the version string the module was loaded with.
func (m *Module) Version() string {
	return m.version
}

// LibraryName maps a version string to the platform-specific file name of
// the native module.
func LibraryName(version string) (string, error) {
	if runtime.GOARCH == "arm64" {
		// The vendor ships x86-64 binaries only.
		return "", &types.UnsupportedPlatformError{OS: runtime.GOOS, Arch: runtime.GOARCH}
	}
	switch runtime.GOOS {
	case "linux":
		return "hq" + version + ".so", nil
	case "darwin":
		return "hq" + version + ".dylib", nil
	case "windows":
		return "hq" + version + ".dll", nil
	default:
		return "", &types.UnsupportedPlatformError{OS: runtime.GOOS, Arch: runtime.GOARCH}
	}
}

// LibraryPath resolves the native module file under the lib/ directory of
// the current working directory.
func LibraryPath(version string) (string, error) {
	name, err := LibraryName(version)
	if err != nil {
		return "", err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, "lib", name), nil
}
