package runtime

import (
	"encoding/binary"

	"github.com/Vistara-Labs/terminator-dancer/systemprog"
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// CreateTestTransfer builds an unsigned legacy transaction moving lamports
// from one account to another via the System Program, for test setup only
// (§4.4). The returned transaction carries a single zero-valued placeholder
// signature; callers either sign it themselves before calling ExecuteParsed,
// or disable Capabilities.VerifySignatures.
func (rt *Runtime) CreateTestTransfer(from, to types.Pubkey, lamports uint64) *types.Transaction {
	data := make([]byte, 1+8)
	data[0] = byte(systemprog.TagTransfer)
	binary.LittleEndian.PutUint64(data[1:], lamports)

	msg := types.Message{
		Header: types.MessageHeader{
			NumRequiredSignatures:       1,
			NumReadonlySignedAccounts:   0,
			NumReadonlyUnsignedAccounts: 1,
		},
		AccountKeys: []types.Pubkey{from, to, types.SystemProgramID},
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: data},
		},
	}

	return &types.Transaction{
		Signatures: []types.Signature{{}},
		Message:    msg,
	}
}
