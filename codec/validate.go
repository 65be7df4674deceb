package codec

import "github.com/Vistara-Labs/terminator-dancer/types"

// ValidateMessage checks that a message satisfies every structural bound in
// §4.1, independent of how it was constructed (decoded from bytes, built by
// hand for tests, or resolved from a v0 message).
func ValidateMessage(msg *types.Message) error {
	h := msg.Header
	if h.NumRequiredSignatures > MaxHeaderField || h.NumReadonlySignedAccounts > MaxHeaderField || h.NumReadonlyUnsignedAccounts > MaxHeaderField {
		return types.NewMalformedTransaction("message header field exceeds maximum of 16")
	}
	if len(msg.AccountKeys) > MaxAccountKeys {
		return types.NewMalformedTransaction("account key count exceeds maximum")
	}
	if len(msg.Instructions) > MaxInstructions {
		return types.NewMalformedTransaction("instruction count exceeds maximum")
	}
	if int(h.NumRequiredSignatures) > len(msg.AccountKeys) {
		return types.NewMalformedTransaction("num_required_signatures exceeds account key count")
	}

	for _, ins := range msg.Instructions {
		if len(ins.Data) > MaxInstructionData {
			return types.NewMalformedTransaction("instruction data length exceeds maximum")
		}
		if int(ins.ProgramIDIndex) >= len(msg.AccountKeys) {
			return &types.OutOfRangeIndex{Which: "program_id_index", Value: int(ins.ProgramIDIndex), Bound: len(msg.AccountKeys)}
		}
		for _, idx := range ins.Accounts {
			if int(idx) >= len(msg.AccountKeys) {
				return &types.OutOfRangeIndex{Which: "account_indices", Value: int(idx), Bound: len(msg.AccountKeys)}
			}
		}
	}
	return nil
}
