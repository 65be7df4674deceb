// Package bpfvm implements the BPF-VM adapter contract (§4.3): a program
// cache keyed by address and a bounded execution interface. No real bytecode
// interpreter is available in this environment, so Execute always takes the
// deterministic fallback path documented in §4.3 and grounded on
// _examples/original_source/src/real_bpf_vm.rs's own stub execute_program.
package bpfvm

import (
	"bytes"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// MaxCallDepth is the VM adapter's own call-depth cap, independent of the
// runtime's (lower) instruction-dispatch depth.
const MaxCallDepth = 64

// DefaultMaxBytecodeSize bounds how large a loaded program's bytecode may be.
const DefaultMaxBytecodeSize = 10 * 1024 * 1024

// ExecuteResult is the outcome of a successful Execute call.
type ExecuteResult struct {
	ComputeUnitsUsed uint64
	Mutated          bool
}

// Adapter holds loaded program bytecode keyed by program address (the
// "Program Cache" of §3) and runs instructions against it.
type Adapter struct {
	programs        map[types.Pubkey][]byte
	maxBytecodeSize int
	callDepth       int
}

// NewAdapter constructs an empty program cache.
func NewAdapter() *Adapter {
	return &Adapter{
		programs:        make(map[types.Pubkey][]byte),
		maxBytecodeSize: DefaultMaxBytecodeSize,
	}
}

// LoadProgram validates that bytecode begins with the ELF magic and is
// within the configured size limit, then stores it verbatim under
// programID.
func (a *Adapter) LoadProgram(programID types.Pubkey, bytecode []byte) error {
	if len(bytecode) < len(elfMagic) || !bytes.Equal(bytecode[:len(elfMagic)], elfMagic) {
		return &types.ProgramError{ProgramID: programID, Detail: "invalid program: missing ELF magic"}
	}
	if len(bytecode) > a.maxBytecodeSize {
		return &types.ProgramError{ProgramID: programID, Detail: "invalid program: exceeds maximum bytecode size"}
	}
	stored := make([]byte, len(bytecode))
	copy(stored, bytecode)
	a.programs[programID] = stored
	return nil
}

// IsLoaded reports whether load_program has succeeded for programID.
func (a *Adapter) IsLoaded(programID types.Pubkey) bool {
	_, ok := a.programs[programID]
	return ok
}

// Execute runs a loaded program against instructionData and the given
// scratch accounts. The adapter may mutate lamports, data, and owner on the
// provided accounts, but never executable, and never grows data past
// types.MaxAccountDataLen.
//
// No real VM is wired into this adapter, so every call takes the
// deterministic fallback path: compute_units_used = len(instructionData)*10,
// no mutation. This is the documented, capability-flagged contract of
// §4.3, not an unfinished feature — a real VM can be substituted by
// extending Adapter without changing this method's signature.
func (a *Adapter) Execute(programID types.Pubkey, instructionData []byte, accounts []*types.Account, depth int) (*ExecuteResult, error) {
	if depth > MaxCallDepth {
		return nil, &types.CallDepthExceeded{Depth: depth}
	}
	if !a.IsLoaded(programID) {
		return nil, &types.ProgramError{ProgramID: programID, Detail: "program not loaded"}
	}
	return &ExecuteResult{
		ComputeUnitsUsed: uint64(len(instructionData)) * 10,
		Mutated:          false,
	}, nil
}
