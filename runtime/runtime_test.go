package runtime

import (
	"testing"

	"github.com/Vistara-Labs/terminator-dancer/config"
	"github.com/Vistara-Labs/terminator-dancer/systemprog"
	"github.com/Vistara-Labs/terminator-dancer/types"
)

func pk(b byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

func noVerify() config.Capabilities {
	c := config.Default()
	c.VerifySignatures = false
	return c
}

// Scenario 1 (§8): a funded account transfers 1,000,000 lamports to an
// absent one. Success, compute_units_consumed=1200 (1000 overhead + 200
// transfer cost), balances updated.
func TestScenarioSimpleTransfer(t *testing.T) {
	rt := New(noVerify())
	a, b := pk(0x01), pk(0x02)
	rt.Fund(a, 10_000_000_000)

	tx := rt.CreateTestTransfer(a, b, 1_000_000)
	result := rt.ExecuteParsed(tx)

	if !result.Success {
		t.Fatalf("expected success, got err=%v", result.Err)
	}
	if result.ComputeUnitsConsumed != 1200 {
		t.Fatalf("compute_units_consumed = %d, want 1200", result.ComputeUnitsConsumed)
	}
	if got := rt.GetBalance(a); got != 9_999_000_000 {
		t.Fatalf("A balance = %d, want 9999000000", got)
	}
	if got := rt.GetBalance(b); got != 1_000_000 {
		t.Fatalf("B balance = %d, want 1000000", got)
	}
}

// Scenario 2 (§8): a transfer exceeding the sender's balance fails with
// InsufficientFunds and leaves both balances untouched.
func TestScenarioInsufficientFunds(t *testing.T) {
	rt := New(noVerify())
	a, b := pk(0x01), pk(0x02)
	rt.Fund(a, 500)

	tx := rt.CreateTestTransfer(a, b, 1_000)
	result := rt.ExecuteParsed(tx)

	if result.Success {
		t.Fatalf("expected failure")
	}
	if _, ok := result.Err.(*types.InsufficientFunds); !ok {
		t.Fatalf("expected *types.InsufficientFunds, got %T: %v", result.Err, result.Err)
	}
	if got := rt.GetBalance(a); got != 500 {
		t.Fatalf("A balance mutated on failure: %d", got)
	}
	if got := rt.GetBalance(b); got != 0 {
		t.Fatalf("B balance mutated on failure: %d", got)
	}
}

// Scenario 3 (§8): create a new account, then assign it a new owner in a
// second instruction of the same transaction.
func TestScenarioCreateThenAssign(t *testing.T) {
	rt := New(noVerify())
	funder, newAcc, owner := pk(0x01), pk(0x02), pk(0x03)
	rt.Fund(funder, 10_000_000)

	createData := make([]byte, 1+8+8+types.PubkeyLength)
	createData[0] = byte(systemprog.TagCreateAccount)
	createData[1] = 0xE8 // 1000 lamports, little-endian low byte
	createData[2] = 0x03
	copy(createData[17:], types.SystemProgramID[:])

	assignData := make([]byte, 1+types.PubkeyLength)
	assignData[0] = byte(systemprog.TagAssign)
	copy(assignData[1:], owner[:])

	msg := types.Message{
		Header: types.MessageHeader{NumRequiredSignatures: 1, NumReadonlyUnsignedAccounts: 1},
		AccountKeys: []types.Pubkey{
			funder, newAcc, types.SystemProgramID,
		},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: createData},
			{ProgramIDIndex: 2, Accounts: []uint8{1}, Data: assignData},
		},
	}
	tx := &types.Transaction{Signatures: []types.Signature{{}}, Message: msg}

	result := rt.ExecuteParsed(tx)
	if !result.Success {
		t.Fatalf("expected success, got err=%v", result.Err)
	}
	acc, ok := rt.GetAccount(newAcc)
	if !ok {
		t.Fatalf("new account not found")
	}
	if acc.Owner != owner {
		t.Fatalf("new account owner = %s, want %s", acc.Owner, owner)
	}
	if acc.Lamports != 1000 {
		t.Fatalf("new account lamports = %d, want 1000", acc.Lamports)
	}
}

// Scenario 4 (§8): allocate space, then re-allocate a different size in a
// later instruction — the buffer is replaced outright, zero-filled.
func TestScenarioAllocateThenReallocate(t *testing.T) {
	rt := New(noVerify())
	target := pk(0x04)
	rt.store.GetOrCreate(target)

	first := make([]byte, 9)
	first[0] = byte(systemprog.TagAllocate)
	first[1] = 64

	second := make([]byte, 9)
	second[0] = byte(systemprog.TagAllocate)
	second[1] = 16

	msg := types.Message{
		Header:      types.MessageHeader{NumRequiredSignatures: 0, NumReadonlyUnsignedAccounts: 2},
		AccountKeys: []types.Pubkey{target, types.SystemProgramID},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 1, Accounts: []uint8{0}, Data: first},
			{ProgramIDIndex: 1, Accounts: []uint8{0}, Data: second},
		},
	}
	tx := &types.Transaction{Signatures: nil, Message: msg}

	result := rt.ExecuteParsed(tx)
	if !result.Success {
		t.Fatalf("expected success, got err=%v", result.Err)
	}
	acc, _ := rt.GetAccount(target)
	if len(acc.Data) != 16 {
		t.Fatalf("Data length = %d, want 16", len(acc.Data))
	}
}

// Scenario 5 (§8): an instruction referencing an account index beyond the
// account-key list is rejected before any dispatch.
func TestScenarioInvalidIndexRejected(t *testing.T) {
	rt := New(noVerify())
	msg := types.Message{
		Header:      types.MessageHeader{NumRequiredSignatures: 0},
		AccountKeys: []types.Pubkey{pk(0x01)},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 0, Accounts: []uint8{5}, Data: []byte{byte(systemprog.TagAssign)}},
		},
	}
	tx := &types.Transaction{Message: msg}

	result := rt.ExecuteParsed(tx)
	if result.Success {
		t.Fatalf("expected failure")
	}
	if _, ok := result.Err.(*types.OutOfRangeIndex); !ok {
		t.Fatalf("expected *types.OutOfRangeIndex, got %T: %v", result.Err, result.Err)
	}
}

// Scenario 6 (§8): with a compute budget of 1500, two zero-lamport
// transfers each costing 1200 (1000 overhead + 200 transfer) run: the
// first succeeds, the second's overhead charge burns the remaining 300
// down to zero and reports ComputeBudgetExceeded with the full budget
// as consumed. The first transfer's effects are not rolled back.
func TestScenarioComputeExhaustion(t *testing.T) {
	caps := noVerify()
	caps.ComputeBudget = 1500
	rt := New(caps)

	a, b := pk(0x01), pk(0x02)
	rt.Fund(a, 1_000)

	transferZero := func() []byte {
		data := make([]byte, 9)
		data[0] = byte(systemprog.TagTransfer)
		return data
	}

	msg := types.Message{
		Header:      types.MessageHeader{NumRequiredSignatures: 0, NumReadonlyUnsignedAccounts: 1},
		AccountKeys: []types.Pubkey{a, b, types.SystemProgramID},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: transferZero()},
			{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: transferZero()},
		},
	}
	tx := &types.Transaction{Message: msg}

	result := rt.ExecuteParsed(tx)
	if result.Success {
		t.Fatalf("expected failure from compute exhaustion")
	}
	if _, ok := result.Err.(*types.ComputeBudgetExceeded); !ok {
		t.Fatalf("expected *types.ComputeBudgetExceeded, got %T: %v", result.Err, result.Err)
	}
	if result.ComputeUnitsConsumed != 1500 {
		t.Fatalf("compute_units_consumed = %d, want 1500 (all charged)", result.ComputeUnitsConsumed)
	}
}

func TestLoadProgramAndDispatchVMFallback(t *testing.T) {
	rt := New(noVerify())
	programID := pk(0x09)
	bytecode := append([]byte{0x7F, 'E', 'L', 'F'}, make([]byte, 12)...)
	if err := rt.LoadProgram(programID, bytecode); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}

	caller := pk(0x0A)
	msg := types.Message{
		Header:      types.MessageHeader{NumRequiredSignatures: 0, NumReadonlyUnsignedAccounts: 2},
		AccountKeys: []types.Pubkey{caller, programID},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 1, Accounts: []uint8{0}, Data: make([]byte, 5)},
		},
	}
	tx := &types.Transaction{Message: msg}

	result := rt.ExecuteParsed(tx)
	if !result.Success {
		t.Fatalf("expected success, got err=%v", result.Err)
	}
	if result.ComputeUnitsConsumed != 1000+50 {
		t.Fatalf("compute_units_consumed = %d, want 1050", result.ComputeUnitsConsumed)
	}
}
