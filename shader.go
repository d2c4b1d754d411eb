package gal

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/gal/internal/cache"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// spirvHeaderWords is the length of the SPIR-V module header.
const spirvHeaderWords = 5

// wgslCacheSize bounds the number of compiled WGSL sources kept.
const wgslCacheSize = 128

// wgslCache maps WGSL source text to SPIR-V words. Entries are shared
// between callers and must not be modified.
var wgslCache = cache.New[string, []uint32](wgslCacheSize, nil)

// ShaderVariable is one location-assigned input or output of a shader
// stage.
type ShaderVariable struct {
	Name     string
	Location uint32
	Format   Format
}

// ShaderInterface lists the stage inputs and outputs of a shader module.
// It drives the interface checks done at pipeline creation; an empty
// interface disables them.
type ShaderInterface struct {
	Inputs  []ShaderVariable
	Outputs []ShaderVariable
}

// ShaderModuleCreateInfo describes one shader stage. Exactly one of SPIRV
// and WGSL must be set.
type ShaderModuleCreateInfo struct {
	Label      string
	Stage      ShaderStageFlags
	EntryPoint string
	SPIRV      []uint32
	WGSL       string
	Interface  ShaderInterface
}

// ShaderModule is a compiled shader stage.
type ShaderModule interface {
	Object
	Stage() ShaderStageFlags
	EntryPoint() string
	Interface() ShaderInterface
}

// CompileShader validates a shader create-info and returns its SPIR-V
// words. WGSL sources are compiled with naga. Failures are reported as
// *ShaderCompilationError.
func CompileShader(info ShaderModuleCreateInfo) ([]uint32, error) {
	if info.Stage == 0 || info.Stage&ShaderStageAll != info.Stage || info.Stage&(info.Stage-1) != 0 {
		return nil, errorf(ErrInvalidArgument, "shader %q: stage must be a single stage bit, got %s", info.Label, info.Stage)
	}
	if info.EntryPoint == "" {
		return nil, errorf(ErrInvalidArgument, "shader %q: missing entry point", info.Label)
	}
	hasSPIRV := len(info.SPIRV) > 0
	hasWGSL := strings.TrimSpace(info.WGSL) != ""
	switch {
	case hasSPIRV && hasWGSL:
		return nil, errorf(ErrInvalidArgument, "shader %q: both SPIR-V and WGSL given", info.Label)
	case !hasSPIRV && !hasWGSL:
		return nil, compileError(info, "empty shader source", nil)
	case hasSPIRV:
		if err := ValidateSPIRV(info.SPIRV); err != nil {
			return nil, compileError(info, err.Error(), err)
		}
		return info.SPIRV, nil
	}

	words, err := wgslCache.GetOrCreate(info.WGSL, func() ([]uint32, error) {
		spirv, err := naga.Compile(info.WGSL)
		if err != nil {
			return nil, compileError(info, err.Error(), err)
		}
		if len(spirv)%4 != 0 {
			return nil, compileError(info, fmt.Sprintf("compiler produced %d bytes, not a multiple of 4", len(spirv)), nil)
		}
		words := make([]uint32, len(spirv)/4)
		for i := range words {
			words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
		}
		return words, nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// ValidateSPIRV checks the SPIR-V module header.
func ValidateSPIRV(words []uint32) error {
	if len(words) < spirvHeaderWords {
		return fmt.Errorf("SPIR-V module too short: %d words", len(words))
	}
	if words[0] != SPIRVMagic {
		return fmt.Errorf("bad SPIR-V magic 0x%08x", words[0])
	}
	return nil
}

func compileError(info ShaderModuleCreateInfo, diag string, err error) error {
	Logger().Debug("gal: shader compilation failed", "label", info.Label, "stage", info.Stage.String(), "diagnostic", diag)
	return &ShaderCompilationError{Stage: info.Stage, Label: info.Label, Diagnostic: diag, Err: err}
}
