package systemprog

import (
	"encoding/binary"
	"testing"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

func key(b byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

func transferData(lamports uint64) []byte {
	out := make([]byte, 9)
	out[0] = byte(TagTransfer)
	binary.LittleEndian.PutUint64(out[1:], lamports)
	return out
}

func createAccountData(lamports, space uint64, owner types.Pubkey) []byte {
	out := make([]byte, 1+8+8+types.PubkeyLength)
	out[0] = byte(TagCreateAccount)
	binary.LittleEndian.PutUint64(out[1:9], lamports)
	binary.LittleEndian.PutUint64(out[9:17], space)
	copy(out[17:], owner[:])
	return out
}

func assignData(owner types.Pubkey) []byte {
	out := make([]byte, 1+types.PubkeyLength)
	out[0] = byte(TagAssign)
	copy(out[1:], owner[:])
	return out
}

func allocateData(space uint64) []byte {
	out := make([]byte, 9)
	out[0] = byte(TagAllocate)
	binary.LittleEndian.PutUint64(out[1:], space)
	return out
}

func TestTransferMovesLamportsAndChargesCost(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	from := &types.Account{Lamports: 1_000_000, Owner: types.SystemProgramID}
	to := types.NewDefaultAccount()

	err := Process(ec, []types.Pubkey{key(1), key(2)}, []*types.Account{from, to}, transferData(1_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Lamports != 999_000 {
		t.Fatalf("from.Lamports = %d, want 999000", from.Lamports)
	}
	if to.Lamports != 1_000 {
		t.Fatalf("to.Lamports = %d, want 1000", to.Lamports)
	}
	if ec.ComputeUnitsConsumed() != costTransfer {
		t.Fatalf("consumed = %d, want %d", ec.ComputeUnitsConsumed(), costTransfer)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	from := &types.Account{Lamports: 100, Owner: types.SystemProgramID}
	to := types.NewDefaultAccount()

	err := Process(ec, []types.Pubkey{key(1), key(2)}, []*types.Account{from, to}, transferData(1_000))
	if err == nil {
		t.Fatalf("expected InsufficientFunds")
	}
	if _, ok := err.(*types.InsufficientFunds); !ok {
		t.Fatalf("expected *types.InsufficientFunds, got %T: %v", err, err)
	}
	if from.Lamports != 100 {
		t.Fatalf("from.Lamports mutated on failure: %d", from.Lamports)
	}
}

func TestTransferSelfIsNoOpButCharged(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	acc := &types.Account{Lamports: 500, Owner: types.SystemProgramID}
	same := key(7)

	err := Process(ec, []types.Pubkey{same, same}, []*types.Account{acc, acc}, transferData(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Lamports != 500 {
		t.Fatalf("self-transfer changed balance: %d", acc.Lamports)
	}
	if ec.ComputeUnitsConsumed() != costTransfer {
		t.Fatalf("self-transfer did not charge: consumed = %d", ec.ComputeUnitsConsumed())
	}
}

func TestCreateAccountFundsAssignsAndResizes(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	funder := &types.Account{Lamports: 1_000_000, Owner: types.SystemProgramID}
	newAcc := types.NewDefaultAccount()
	owner := key(9)

	err := Process(ec, []types.Pubkey{key(1), key(2)}, []*types.Account{funder, newAcc}, createAccountData(500, 128, owner))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if funder.Lamports != 999_500 {
		t.Fatalf("funder.Lamports = %d, want 999500", funder.Lamports)
	}
	if newAcc.Lamports != 500 {
		t.Fatalf("newAcc.Lamports = %d, want 500", newAcc.Lamports)
	}
	if len(newAcc.Data) != 128 {
		t.Fatalf("newAcc.Data length = %d, want 128", len(newAcc.Data))
	}
	if newAcc.Owner != owner {
		t.Fatalf("newAcc.Owner not set to requested owner")
	}
	if ec.ComputeUnitsConsumed() != costCreateAccount {
		t.Fatalf("consumed = %d, want %d", ec.ComputeUnitsConsumed(), costCreateAccount)
	}
}

func TestCreateAccountRejectsAlreadyOwnedTarget(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	funder := &types.Account{Lamports: 1_000_000, Owner: types.SystemProgramID}
	newAcc := &types.Account{Owner: key(99)}

	err := Process(ec, []types.Pubkey{key(1), key(2)}, []*types.Account{funder, newAcc}, createAccountData(500, 0, key(9)))
	if _, ok := err.(*types.InvalidOwner); !ok {
		t.Fatalf("expected *types.InvalidOwner, got %T: %v", err, err)
	}
}

func TestAssignChangesOwner(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	acc := &types.Account{Owner: types.SystemProgramID}
	newOwner := key(42)

	err := Process(ec, []types.Pubkey{key(1)}, []*types.Account{acc}, assignData(newOwner))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Owner != newOwner {
		t.Fatalf("owner not reassigned")
	}
	if ec.ComputeUnitsConsumed() != costAssign {
		t.Fatalf("consumed = %d, want %d", ec.ComputeUnitsConsumed(), costAssign)
	}
}

func TestAllocateZeroFillsAndReallocates(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	acc := &types.Account{Owner: types.SystemProgramID, Data: []byte{0xFF, 0xFF, 0xFF}}

	if err := Process(ec, []types.Pubkey{key(1)}, []*types.Account{acc}, allocateData(64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(acc.Data) != 64 {
		t.Fatalf("Data length = %d, want 64", len(acc.Data))
	}
	for i, b := range acc.Data {
		if b != 0 {
			t.Fatalf("byte %d not zero-filled after allocate: %x", i, b)
		}
	}

	// Re-allocating replaces the buffer outright, at the derived cost.
	ec2 := types.NewExecutionContext(10_000)
	if err := Process(ec2, []types.Pubkey{key(1)}, []*types.Account{acc}, allocateData(10_000)); err != nil {
		t.Fatalf("unexpected error on re-allocate: %v", err)
	}
	if len(acc.Data) != 10_000 {
		t.Fatalf("Data length after re-allocate = %d, want 10000", len(acc.Data))
	}
	if want := allocateCost(10_000); ec2.ComputeUnitsConsumed() != want {
		t.Fatalf("consumed = %d, want %d", ec2.ComputeUnitsConsumed(), want)
	}
}

func TestAllocateCostFloor(t *testing.T) {
	if got := allocateCost(0); got != allocateBaseCost {
		t.Fatalf("allocateCost(0) = %d, want floor %d", got, allocateBaseCost)
	}
	if got := allocateCost(50_000); got != 500 {
		t.Fatalf("allocateCost(50000) = %d, want 500", got)
	}
}

func TestTransferWithSeedAliasesTransferAccounts(t *testing.T) {
	ec := types.NewExecutionContext(10_000)
	from := &types.Account{Lamports: 1_000, Owner: types.SystemProgramID}
	base := types.NewDefaultAccount()
	to := types.NewDefaultAccount()

	data := make([]byte, 1+8+4+types.PubkeyLength)
	data[0] = byte(TagTransferWithSeed)
	binary.LittleEndian.PutUint64(data[1:9], 300)
	// seed length 0, then owner pubkey
	fromOwner := key(5)
	copy(data[13:], fromOwner[:])

	err := Process(ec, []types.Pubkey{key(1), key(2), key(3)}, []*types.Account{from, base, to}, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Lamports != 700 {
		t.Fatalf("from.Lamports = %d, want 700", from.Lamports)
	}
	if to.Lamports != 300 {
		t.Fatalf("to.Lamports = %d, want 300", to.Lamports)
	}
}

func TestUnknownTagProducesProgramError(t *testing.T) {
	_, err := Decode([]byte{99})
	if _, ok := err.(*types.ProgramError); !ok {
		t.Fatalf("expected *types.ProgramError, got %T: %v", err, err)
	}
}
