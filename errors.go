package gal

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by devices, resources and backends. Callers should match
// them with errors.Is; most call sites wrap them with extra context.
var (
	// ErrInvalidArgument is returned for malformed create-infos, out of range
	// indices and similar caller mistakes.
	ErrInvalidArgument = errors.New("gal: invalid argument")

	// ErrUnsupportedFormat is returned when the physical device cannot use a
	// format for the requested usage, tiling or sample count.
	ErrUnsupportedFormat = errors.New("gal: unsupported format")

	// ErrUnsupportedCapability is returned when a feature cannot be expressed
	// by the active backend.
	ErrUnsupportedCapability = errors.New("gal: unsupported capability")

	// ErrOutOfDeviceMemory is returned when a memory heap is exhausted.
	ErrOutOfDeviceMemory = errors.New("gal: out of device memory")

	// ErrShaderCompilation is the sentinel wrapped by *ShaderCompilationError.
	ErrShaderCompilation = errors.New("gal: shader compilation failed")

	// ErrInvalidState is returned when an object is used in a state that does
	// not allow the operation (recording twice, resubmitting a pending
	// command buffer, destroyed resources).
	ErrInvalidState = errors.New("gal: invalid state")

	// ErrIncompatibleRenderPass is returned when a frame buffer or pipeline
	// does not match the render pass it is used with.
	ErrIncompatibleRenderPass = errors.New("gal: incompatible render pass")

	// ErrDescriptorTypeMismatch is returned when a descriptor write does not
	// match the layout's declared type.
	ErrDescriptorTypeMismatch = errors.New("gal: descriptor type mismatch")

	// ErrInvalidSubpassUsage is returned when a subpass uses an attachment in
	// conflicting roles.
	ErrInvalidSubpassUsage = errors.New("gal: invalid subpass usage")

	// ErrInvalidUsageCombination is returned for usage and memory property
	// flags that cannot be combined.
	ErrInvalidUsageCombination = errors.New("gal: invalid usage combination")

	// ErrDeviceLost is sticky: once a device is lost every later call on it
	// and its children fails with this error.
	ErrDeviceLost = errors.New("gal: device lost")

	// ErrTimeout is returned by waits that did not complete in time.
	ErrTimeout = errors.New("gal: timeout")

	// ErrBackendNotFound is returned when no registered plugin has the
	// requested name.
	ErrBackendNotFound = errors.New("gal: backend not found")

	// ErrIncompatibleVersion is returned when a plugin requires a different
	// version of this API.
	ErrIncompatibleVersion = errors.New("gal: incompatible plugin version")
)

// ShaderCompilationError carries the diagnostic produced while turning a
// shader source into a module.
type ShaderCompilationError struct {
	Stage      ShaderStageFlags
	Label      string
	Diagnostic string
	Err        error
}

func (e *ShaderCompilationError) Error() string {
	var b strings.Builder
	b.WriteString("gal: shader compilation failed")
	if e.Label != "" {
		fmt.Fprintf(&b, " (%s)", e.Label)
	}
	if e.Stage != 0 {
		fmt.Fprintf(&b, " [%s]", e.Stage)
	}
	if e.Diagnostic != "" {
		b.WriteString(": ")
		b.WriteString(e.Diagnostic)
	}
	return b.String()
}

// Unwrap reports ErrShaderCompilation and the underlying compiler error.
func (e *ShaderCompilationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrShaderCompilation}
	}
	return []error{ErrShaderCompilation, e.Err}
}

// PanicInvalid panics with an error wrapping ErrInvalidArgument. It is used
// for broken preconditions that indicate a programming error, such as
// translating an enum value that has no native equivalent.
func PanicInvalid(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...))
}

// errorf wraps sentinel with a formatted message.
func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
