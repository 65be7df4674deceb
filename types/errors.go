package types

import "fmt"

// MalformedTransaction reports a wire-format decode failure.
type MalformedTransaction struct {
	Reason    string
	Offset    int
	HasOffset bool
}

func (e *MalformedTransaction) Error() string {
	if e.HasOffset {
		return fmt.Sprintf("malformed transaction at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed transaction: %s", e.Reason)
}

// NewMalformedTransaction builds a MalformedTransaction without an offset.
func NewMalformedTransaction(reason string) *MalformedTransaction {
	return &MalformedTransaction{Reason: reason}
}

// NewMalformedTransactionAt builds a MalformedTransaction with an offset.
func NewMalformedTransactionAt(reason string, offset int) *MalformedTransaction {
	return &MalformedTransaction{Reason: reason, Offset: offset, HasOffset: true}
}

// TruncatedInput reports that the decoder ran out of bytes mid-field.
type TruncatedInput struct {
	Reason string
}

func (e *TruncatedInput) Error() string { return fmt.Sprintf("truncated input: %s", e.Reason) }

// OutOfRangeIndex reports a structural-validation index failure.
type OutOfRangeIndex struct {
	Which string
	Value int
	Bound int
}

func (e *OutOfRangeIndex) Error() string {
	return fmt.Sprintf("%s index %d out of range (bound %d)", e.Which, e.Value, e.Bound)
}

// SignatureInvalid reports a crypto verification failure.
type SignatureInvalid struct {
	Index int
}

func (e *SignatureInvalid) Error() string { return fmt.Sprintf("signature %d invalid", e.Index) }

// InsufficientFunds reports that an account lacks the lamports an
// operation needs.
type InsufficientFunds struct {
	Account   Pubkey
	Needed    uint64
	Available uint64
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("account %s: insufficient funds, needed %d, available %d", e.Account, e.Needed, e.Available)
}

// InvalidOwner reports that an account is not owned by the program that
// a System Program operation requires.
type InvalidOwner struct {
	Account  Pubkey
	Expected Pubkey
	Actual   Pubkey
}

func (e *InvalidOwner) Error() string {
	return fmt.Sprintf("account %s: invalid owner, expected %s, got %s", e.Account, e.Expected, e.Actual)
}

// InvalidRequest reports a size/shape violation not covered by a more
// specific error kind.
type InvalidRequest struct {
	Detail string
}

func (e *InvalidRequest) Error() string { return fmt.Sprintf("invalid request: %s", e.Detail) }

// ComputeBudgetExceeded reports that metering ran out mid-transaction.
type ComputeBudgetExceeded struct {
	Charged uint64
}

func (e *ComputeBudgetExceeded) Error() string {
	return fmt.Sprintf("compute budget exceeded, charged %d", e.Charged)
}

// ProgramError reports a VM-adapter execution failure.
type ProgramError struct {
	ProgramID Pubkey
	Detail    string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("program %s error: %s", e.ProgramID, e.Detail)
}

// CallDepthExceeded reports that the VM adapter's call-depth cap was hit.
type CallDepthExceeded struct {
	Depth int
}

func (e *CallDepthExceeded) Error() string {
	return fmt.Sprintf("call depth %d exceeded", e.Depth)
}
