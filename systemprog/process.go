package systemprog

import (
	"fmt"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

// Compute costs charged on success (§4.2).
const (
	costCreateAccount = 1000
	costAssign        = 500
	costTransfer      = 200
	allocateBaseCost  = 200
	allocateDivisor   = 100
)

func allocateCost(space uint64) uint64 {
	derived := space / allocateDivisor
	if derived < allocateBaseCost {
		return allocateBaseCost
	}
	return derived
}

// Process dispatches a decoded System Program instruction against its
// scratch account copies. keys and accounts are parallel slices in the
// order the instruction's account_indices gave; each variant checks that
// enough accounts were supplied (requireAccounts) before touching them.
func Process(ec *types.ExecutionContext, keys []types.Pubkey, accounts []*types.Account, data []byte) error {
	ins, err := Decode(data)
	if err != nil {
		return err
	}

	switch ins.Tag {
	case TagCreateAccount, TagCreateAccountWithSeed:
		if err := requireAccounts(keys, accounts, 2, "create_account"); err != nil {
			return err
		}
		if ins.Tag == TagCreateAccountWithSeed {
			logDerivedAddress(ec, ins.Base, ins.Seed, ins.Owner, keys[1])
		}
		return createAccount(ec, keys[0], keys[1], accounts[0], accounts[1], ins.Lamports, ins.Space, ins.Owner)

	case TagAssign, TagAssignWithSeed:
		if err := requireAccounts(keys, accounts, 1, "assign"); err != nil {
			return err
		}
		if ins.Tag == TagAssignWithSeed {
			logDerivedAddress(ec, ins.Base, ins.Seed, ins.Owner, keys[0])
		}
		return assign(ec, keys[0], accounts[0], ins.Owner)

	case TagTransfer:
		if err := requireAccounts(keys, accounts, 2, "transfer"); err != nil {
			return err
		}
		return transfer(ec, keys[0], keys[1], accounts[0], accounts[1], ins.Lamports)

	case TagTransferWithSeed:
		// Accounts: [from(w), base(r), to(w)]; seed/base derivation is not
		// enforced (§9 Open Question "seeded instructions").
		if err := requireAccounts(keys, accounts, 3, "transfer_with_seed"); err != nil {
			return err
		}
		logDerivedAddress(ec, keys[1], ins.FromSeed, ins.Owner, keys[0])
		return transfer(ec, keys[0], keys[2], accounts[0], accounts[2], ins.Lamports)

	case TagAllocate, TagAllocateWithSeed:
		if err := requireAccounts(keys, accounts, 1, "allocate"); err != nil {
			return err
		}
		if ins.Tag == TagAllocateWithSeed {
			logDerivedAddress(ec, ins.Base, ins.Seed, ins.Owner, keys[0])
		}
		return allocate(ec, keys[0], accounts[0], ins.Space)

	default:
		return programError("unhandled system instruction tag")
	}
}

// logDerivedAddress records the address a seeded instruction's target
// account would occupy under correct derivation, without rejecting the
// instruction if actual does not match — diagnostics only.
func logDerivedAddress(ec *types.ExecutionContext, base types.Pubkey, seed string, owner types.Pubkey, actual types.Pubkey) {
	expected := DeriveAddress(base, seed, owner)
	if expected != actual {
		ec.Log(fmt.Sprintf("seeded instruction: derived address %s does not match target %s (not enforced)", expected, actual))
	}
}

func requireAccounts(keys []types.Pubkey, accounts []*types.Account, n int, op string) error {
	if len(accounts) < n || len(keys) < n {
		return programError(fmt.Sprintf("%s: requires %d accounts", op, n))
	}
	return nil
}

// createAccount funds a new account and assigns it an owner and data size.
// Grounded on system_program.rs's create_account: funds check, zero-filled
// data, owner set and rent_epoch reset. Executable is left unchanged.
func createAccount(ec *types.ExecutionContext, funderKey, newKey types.Pubkey, funder, newAcc *types.Account, lamports, space uint64, owner types.Pubkey) error {
	if space > types.MaxAccountDataLen {
		return &types.InvalidRequest{Detail: "create_account: space exceeds maximum account data size"}
	}
	if newAcc.Owner != types.SystemProgramID {
		return &types.InvalidOwner{Account: newKey, Expected: types.SystemProgramID, Actual: newAcc.Owner}
	}
	if funder.Lamports < lamports {
		return &types.InsufficientFunds{Account: funderKey, Needed: lamports, Available: funder.Lamports}
	}

	funder.Lamports -= lamports
	newAcc.Lamports += lamports
	newAcc.Resize(space)
	newAcc.Owner = owner
	newAcc.RentEpoch = 0

	return ec.Charge(costCreateAccount)
}

// assign changes an account's owner. Only a System-Program-owned account may
// be reassigned.
func assign(ec *types.ExecutionContext, key types.Pubkey, acc *types.Account, owner types.Pubkey) error {
	if acc.Owner != types.SystemProgramID {
		return &types.InvalidOwner{Account: key, Expected: types.SystemProgramID, Actual: acc.Owner}
	}
	acc.Owner = owner
	return ec.Charge(costAssign)
}

// transfer moves lamports between two accounts. A self-transfer (from and to
// refer to the same key) is a no-op that still charges compute (§4.4's
// aliasing rule).
func transfer(ec *types.ExecutionContext, fromKey, toKey types.Pubkey, from, to *types.Account, lamports uint64) error {
	if from.Lamports < lamports {
		return &types.InsufficientFunds{Account: fromKey, Needed: lamports, Available: from.Lamports}
	}
	if fromKey != toKey {
		from.Lamports -= lamports
		to.Lamports += lamports
	}
	return ec.Charge(costTransfer)
}

// allocate resizes an account's data buffer to space bytes, zero-filled.
// Re-allocating an already-sized account replaces its data outright.
func allocate(ec *types.ExecutionContext, key types.Pubkey, acc *types.Account, space uint64) error {
	if space > types.MaxAccountDataLen {
		return &types.InvalidRequest{Detail: "allocate: space exceeds maximum account data size"}
	}
	if acc.Owner != types.SystemProgramID {
		return &types.InvalidOwner{Account: key, Expected: types.SystemProgramID, Actual: acc.Owner}
	}
	acc.Resize(space)
	return ec.Charge(allocateCost(space))
}
