package codec

import (
	"encoding/json"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

// EncodeTransactionJSON renders a legacy transaction as the textual form
// described in §4.1: account keys and the blockhash as base58, instruction
// data as base64. Pubkey/Hash/Signature satisfy encoding.TextMarshaler with
// base58 output; []byte fields fall back to encoding/json's own base64
// handling, so a plain struct-tagged marshal produces the required shape.
func EncodeTransactionJSON(tx *types.Transaction) ([]byte, error) {
	return json.Marshal(tx)
}

// DecodeTransactionJSON parses the textual form produced by
// EncodeTransactionJSON. Only legacy transactions are guaranteed to
// round-trip (§4.1).
func DecodeTransactionJSON(data []byte) (*types.Transaction, error) {
	var tx types.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
