package codec

import (
	"fmt"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

// EncodeTransaction serializes a legacy transaction, the exact inverse of
// DecodeTransaction's legacy path: every legacy transaction round-trips
// byte-for-byte through Decode(Encode(tx)).
//
// Encoding a v0 transaction is only supported when it carries no address
// table lookups (the "legacy-shaped" case); encoding a resolved v0
// transaction is explicitly out of contract (§4.1).
func EncodeTransaction(tx *types.Transaction) ([]byte, error) {
	if tx.IsV0 {
		if tx.V0Message == nil || len(tx.V0Message.AddressTableLookups) > 0 {
			return nil, &types.InvalidRequest{Detail: "encoding a resolved or lookup-bearing v0 transaction is not supported"}
		}
		return encodeLegacyShaped(tx.Signatures, &types.Message{
			Header:          tx.V0Message.Header,
			AccountKeys:     tx.V0Message.AccountKeys,
			RecentBlockhash: tx.V0Message.RecentBlockhash,
			Instructions:    tx.V0Message.Instructions,
		})
	}
	return encodeLegacyShaped(tx.Signatures, &tx.Message)
}

func encodeLegacyShaped(signatures []types.Signature, msg *types.Message) ([]byte, error) {
	if len(signatures) > 0xFF {
		return nil, &types.InvalidRequest{Detail: "too many signatures to encode"}
	}
	out := make([]byte, 0, 64+len(signatures)*64)
	out = append(out, byte(len(signatures)))
	for _, sig := range signatures {
		out = append(out, sig[:]...)
	}

	body, err := EncodeMessage(msg)
	if err != nil {
		return nil, err
	}
	out = append(out, body...)
	return out, nil
}

// EncodeMessage serializes the legacy-shaped message body (header, account
// keys, blockhash, instructions) — the same bytes that are signed.
func EncodeMessage(msg *types.Message) ([]byte, error) {
	if len(msg.AccountKeys) > MaxAccountKeys {
		return nil, fmt.Errorf("too many account keys to encode: %d", len(msg.AccountKeys))
	}
	if len(msg.Instructions) > MaxInstructions {
		return nil, fmt.Errorf("too many instructions to encode: %d", len(msg.Instructions))
	}

	out := make([]byte, 0, 128)
	out = append(out, msg.Header.NumRequiredSignatures, msg.Header.NumReadonlySignedAccounts, msg.Header.NumReadonlyUnsignedAccounts)

	out = append(out, byte(len(msg.AccountKeys)))
	for _, k := range msg.AccountKeys {
		out = append(out, k[:]...)
	}

	out = append(out, msg.RecentBlockhash[:]...)

	out = append(out, byte(len(msg.Instructions)))
	for _, ins := range msg.Instructions {
		if len(ins.Data) > MaxInstructionData {
			return nil, fmt.Errorf("instruction data too long to encode: %d", len(ins.Data))
		}
		out = append(out, ins.ProgramIDIndex)
		out = append(out, byte(len(ins.Accounts)))
		out = append(out, ins.Accounts...)
		out = append(out, EncodeCompactU16(len(ins.Data))...)
		out = append(out, ins.Data...)
	}
	return out, nil
}

// SigningBytes returns the bytes that signatures are computed over: the
// serialized message, with the signatures section omitted (§9, Open
// Question "signing-bytes layout"). For a v0 transaction this is computed
// against its resolved legacy-shaped message.
func SigningBytes(tx *types.Transaction) ([]byte, error) {
	if tx.IsV0 {
		resolved, err := ResolveLookups(tx.V0Message)
		if err != nil {
			return nil, err
		}
		return EncodeMessage(resolved)
	}
	return EncodeMessage(&tx.Message)
}
