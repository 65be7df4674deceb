// Package runtime implements the Integrated Runtime (§4.4): it owns the
// account store and drives signature verification, per-instruction dispatch,
// account marshalling, compute metering, and result assembly.
//
// Grounded on _examples/original_source/src/integrated_runtime.rs for the
// per-instruction scratch-copy/dispatch/write-back algorithm and the
// account-store shape.
package runtime

import (
	"fmt"
	"log/slog"

	"github.com/Vistara-Labs/terminator-dancer/bpfvm"
	"github.com/Vistara-Labs/terminator-dancer/codec"
	"github.com/Vistara-Labs/terminator-dancer/config"
	"github.com/Vistara-Labs/terminator-dancer/cryptoiface"
	"github.com/Vistara-Labs/terminator-dancer/systemprog"
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// instructionOverhead is the fixed per-instruction charge before dispatch
// (§4.4 step 4a).
const instructionOverhead = 1000

// Runtime is a single, strictly single-threaded instance of the execution
// engine. It is not safe to share across goroutines (§5); host parallelism
// must partition work across independent Runtime instances.
type Runtime struct {
	store *AccountStore
	vm    *bpfvm.Adapter
	caps  config.Capabilities
	log   *slog.Logger
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithLogger overrides the default tint-backed operational logger. A nil
// logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.log = l
		}
	}
}

// WithBootstrapAccounts seeds the System Program account at construction,
// mirroring the reference implementation's initialize_default_accounts.
// Off by default: spec.md §3 defines lazy, zero-lamport account creation,
// and a library embedder should not receive surprise pre-funded accounts.
func WithBootstrapAccounts(enabled bool) Option {
	return func(rt *Runtime) {
		if enabled {
			rt.store.GetOrCreate(types.SystemProgramID).SetExecutable()
		}
	}
}

// New constructs a Runtime with the given capability set.
func New(caps config.Capabilities, opts ...Option) *Runtime {
	rt := &Runtime{
		store: NewAccountStore(),
		vm:    bpfvm.NewAdapter(),
		caps:  caps,
		log:   defaultLogger(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.log.Info("runtime initialized", "capabilities", caps.Summary())
	return rt
}

// Capabilities returns the runtime's read-only capability set (§6).
func (rt *Runtime) Capabilities() config.Capabilities { return rt.caps }

// GetAccount returns the account at pk, if known.
func (rt *Runtime) GetAccount(pk types.Pubkey) (*types.Account, bool) {
	return rt.store.Get(pk)
}

// GetBalance returns the lamports held at pk, or 0 if pk is unknown.
func (rt *Runtime) GetBalance(pk types.Pubkey) uint64 {
	if acc, ok := rt.store.Get(pk); ok {
		return acc.Lamports
	}
	return 0
}

// Fund adds lamports to pk's account for test setup, creating it if absent.
// This is a distinct entry point precisely so it can be stubbed out of
// production builds (§6).
func (rt *Runtime) Fund(pk types.Pubkey, lamports uint64) {
	rt.store.Fund(pk, lamports)
}

// TotalBalance sums lamports across every known account.
func (rt *Runtime) TotalBalance() uint64 { return rt.store.TotalBalance() }

// AccountCount returns the number of distinct accounts known to the store.
func (rt *Runtime) AccountCount() int { return rt.store.Count() }

// LoadProgram exposes the VM adapter's load_program operation (§4.3).
func (rt *Runtime) LoadProgram(programID types.Pubkey, bytecode []byte) error {
	return rt.vm.LoadProgram(programID, bytecode)
}

// Execute decodes raw transaction bytes and executes them.
func (rt *Runtime) Execute(raw []byte) *types.TransactionResult {
	tx, err := codec.DecodeTransaction(raw)
	if err != nil {
		return &types.TransactionResult{Success: false, Err: err}
	}
	return rt.ExecuteParsed(tx)
}

// ExecuteParsed runs the per-transaction algorithm of §4.4 against an
// already-decoded transaction.
func (rt *Runtime) ExecuteParsed(tx *types.Transaction) *types.TransactionResult {
	ec := types.NewExecutionContext(rt.caps.ComputeBudget)

	msg, err := rt.resolveMessage(tx)
	if err != nil {
		return finalize(ec, err)
	}
	if err := codec.ValidateMessage(msg); err != nil {
		return finalize(ec, err)
	}
	if len(tx.Signatures) != int(msg.Header.NumRequiredSignatures) {
		return finalize(ec, types.NewMalformedTransaction("signature count does not match header.num_required_signatures"))
	}

	if rt.caps.VerifySignatures {
		if err := rt.verifySignatures(tx, msg); err != nil {
			return finalize(ec, err)
		}
	}

	for i, instr := range msg.Instructions {
		if err := ec.Charge(instructionOverhead); err != nil {
			return finalize(ec, err)
		}

		if int(instr.ProgramIDIndex) >= len(msg.AccountKeys) {
			return finalize(ec, &types.OutOfRangeIndex{Which: "program_id_index", Value: int(instr.ProgramIDIndex), Bound: len(msg.AccountKeys)})
		}
		programID := msg.AccountKeys[instr.ProgramIDIndex]

		keys := make([]types.Pubkey, len(instr.Accounts))
		scratch := make([]*types.Account, len(instr.Accounts))
		for j, idx := range instr.Accounts {
			if int(idx) >= len(msg.AccountKeys) {
				return finalize(ec, &types.OutOfRangeIndex{Which: "account_indices", Value: int(idx), Bound: len(msg.AccountKeys)})
			}
			key := msg.AccountKeys[idx]
			keys[j] = key
			scratch[j] = rt.store.GetOrCreate(key).Clone()
		}

		rt.log.Debug("dispatching instruction", "index", i, "trace", traceInstruction(programID, instr.Data))

		var dispatchErr error
		if programID.IsZero() {
			dispatchErr = systemprog.Process(ec, keys, scratch, instr.Data)
		} else {
			dispatchErr = rt.dispatchVM(ec, programID, instr.Data, scratch)
		}

		if dispatchErr != nil {
			ec.Log(fmt.Sprintf("instruction %d failed: %v", i, dispatchErr))
			return finalize(ec, dispatchErr)
		}

		// Write back in account_indices order; a duplicated key's scratch
		// copies are independent (§4.4's aliasing rule), so the last write
		// wins here.
		for j, key := range keys {
			rt.store.Put(key, scratch[j])
		}
		ec.Log(fmt.Sprintf("instruction %d ok", i))
	}

	return finalize(ec, nil)
}

// resolveMessage returns the legacy-shaped message a Transaction should be
// validated and executed against, resolving v0 lookups if necessary.
func (rt *Runtime) resolveMessage(tx *types.Transaction) (*types.Message, error) {
	if !tx.IsV0 {
		return &tx.Message, nil
	}
	if tx.V0Message == nil {
		return nil, types.NewMalformedTransaction("v0 transaction missing message")
	}
	return codec.ResolveLookups(tx.V0Message)
}

func (rt *Runtime) verifySignatures(tx *types.Transaction, msg *types.Message) error {
	signingBytes, err := codec.SigningBytes(tx)
	if err != nil {
		return err
	}
	signerKeys := msg.SignerKeys()
	for i, sig := range tx.Signatures {
		if i >= len(signerKeys) {
			break
		}
		if !cryptoiface.VerifyEd25519(signerKeys[i], signingBytes, sig) {
			return &types.SignatureInvalid{Index: i}
		}
	}
	return nil
}

// dispatchVM routes an instruction to the BPF-VM adapter. If the program
// account is marked executable but hasn't been explicitly loaded yet, its
// stored data is lazily loaded as bytecode, mirroring the reference
// implementation's lazy program load in execute_bpf_program.
func (rt *Runtime) dispatchVM(ec *types.ExecutionContext, programID types.Pubkey, data []byte, scratch []*types.Account) error {
	if !rt.caps.EnableVM {
		return &types.ProgramError{ProgramID: programID, Detail: "vm disabled by capability flag"}
	}
	if !rt.vm.IsLoaded(programID) {
		if progAcc, ok := rt.store.Get(programID); ok && progAcc.Executable {
			_ = rt.vm.LoadProgram(programID, progAcc.Data)
		}
	}
	result, err := rt.vm.Execute(programID, data, scratch, 1)
	if err != nil {
		return err
	}
	return ec.Charge(result.ComputeUnitsUsed)
}

func finalize(ec *types.ExecutionContext, err error) *types.TransactionResult {
	return &types.TransactionResult{
		Success:              err == nil,
		ComputeUnitsConsumed: ec.ComputeUnitsConsumed(),
		Logs:                 ec.LogMessages,
		Err:                  err,
	}
}
