package codec

import (
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// Resource bounds enforced at parse time (§4.1, §5).
const (
	MaxHeaderField     = 16
	MaxAccountKeys     = 64
	MaxInstructions    = 64
	MaxInstructionData = 1232
)

// DecodeTransaction parses raw wire bytes into a Transaction. It detects
// legacy vs v0 from the high bit of the first byte and enforces the §4.1
// bounds before returning. For v0 transactions the program_id_index and
// account-index bounds are not checked here; ValidateMessage checks them
// against the resolved key list (see readInstructions).
func DecodeTransaction(data []byte) (*types.Transaction, error) {
	if len(data) < 1 {
		return nil, &types.TruncatedInput{Reason: "empty transaction"}
	}
	first, _ := newCursor(data).peekByte()
	if first&0x80 != 0 {
		return decodeV0(data)
	}
	return decodeLegacy(data)
}

func decodeLegacy(data []byte) (*types.Transaction, error) {
	c := newCursor(data)

	sigCount, err := c.readByte("signature count")
	if err != nil {
		return nil, err
	}
	signatures := make([]types.Signature, sigCount)
	for i := range signatures {
		sig, err := c.readSignature("signature")
		if err != nil {
			return nil, err
		}
		signatures[i] = sig
	}

	// Some transports include a redundant compact-u16 length prefix ahead of
	// the message; skip it if present.
	if b, ok := c.peekByte(); ok && b&0x80 != 0 {
		if _, err := c.readCompactU16("redundant length prefix"); err != nil {
			return nil, err
		}
	}

	msg, err := decodeMessage(c, true)
	if err != nil {
		return nil, err
	}

	if int(sigCount) != int(msg.Header.NumRequiredSignatures) {
		return nil, c.malformedAt("signature count does not match header.num_required_signatures")
	}

	return &types.Transaction{Signatures: signatures, IsV0: false, Message: *msg}, nil
}

// decodeMessage reads the shared legacy-shaped body: header, account keys,
// blockhash, instructions. enforceIndexBounds gates whether program_id_index
// and account indices are checked against the account-key list read here:
// true for legacy messages (the account-key list is final), false for v0
// messages (indices may reference lookup-table-supplied accounts that don't
// exist yet at this point — see readInstructions).
func decodeMessage(c *cursor, enforceIndexBounds bool) (*types.Message, error) {
	header, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	keyCount, err := c.readByte("account key count")
	if err != nil {
		return nil, err
	}
	if int(keyCount) > MaxAccountKeys {
		return nil, c.malformedAt("account key count exceeds maximum")
	}
	keys := make([]types.Pubkey, keyCount)
	for i := range keys {
		pk, err := c.readPubkey("account key")
		if err != nil {
			return nil, err
		}
		keys[i] = pk
	}

	blockhash, err := c.readHash("recent blockhash")
	if err != nil {
		return nil, err
	}

	instructions, err := readInstructions(c, len(keys), enforceIndexBounds)
	if err != nil {
		return nil, err
	}

	return &types.Message{
		Header:          *header,
		AccountKeys:     keys,
		RecentBlockhash: blockhash,
		Instructions:    instructions,
	}, nil
}

func readHeader(c *cursor) (*types.MessageHeader, error) {
	reqSigs, err := c.readByte("num_required_signatures")
	if err != nil {
		return nil, err
	}
	roSigned, err := c.readByte("num_readonly_signed_accounts")
	if err != nil {
		return nil, err
	}
	roUnsigned, err := c.readByte("num_readonly_unsigned_accounts")
	if err != nil {
		return nil, err
	}
	if reqSigs > MaxHeaderField || roSigned > MaxHeaderField || roUnsigned > MaxHeaderField {
		return nil, c.malformedAt("message header field exceeds maximum of 16")
	}
	return &types.MessageHeader{
		NumRequiredSignatures:       reqSigs,
		NumReadonlySignedAccounts:   roSigned,
		NumReadonlyUnsignedAccounts: roUnsigned,
	}, nil
}

// readInstructions parses the instruction list. For legacy messages
// enforceIndexBounds is true and every program_id_index/account index is
// checked against accountKeyCount immediately, since that list is final.
// For v0 messages it is false: a v0 instruction may legitimately reference
// an index beyond the static account-key list, resolved later from an
// address lookup table (§4.1's address-lookup-table mechanism). Bounds are
// instead enforced once by codec.ValidateMessage against the resolved key
// list, matching solana_format.rs's parse_compiled_instruction (which does
// no index validation) and validate_transaction_format (which runs after
// v0_to_legacy_message resolution).
func readInstructions(c *cursor, accountKeyCount int, enforceIndexBounds bool) ([]types.CompiledInstruction, error) {
	count, err := c.readByte("instruction count")
	if err != nil {
		return nil, err
	}
	if int(count) > MaxInstructions {
		return nil, c.malformedAt("instruction count exceeds maximum")
	}
	out := make([]types.CompiledInstruction, count)
	for i := range out {
		programIDIndex, err := c.readByte("program_id_index")
		if err != nil {
			return nil, err
		}
		if enforceIndexBounds && int(programIDIndex) >= accountKeyCount {
			return nil, &types.OutOfRangeIndex{Which: "program_id_index", Value: int(programIDIndex), Bound: accountKeyCount}
		}

		accCount, err := c.readByte("instruction account count")
		if err != nil {
			return nil, err
		}
		accIdx := make([]uint8, accCount)
		for j := range accIdx {
			idx, err := c.readByte("instruction account index")
			if err != nil {
				return nil, err
			}
			if enforceIndexBounds && int(idx) >= accountKeyCount {
				return nil, &types.OutOfRangeIndex{Which: "account_indices", Value: int(idx), Bound: accountKeyCount}
			}
			accIdx[j] = idx
		}

		// Instruction data length is compact-u16-encoded rather than a plain
		// byte: the 1232-byte bound (§4.1, §8) cannot be expressed in a
		// single byte otherwise. Values below 128 (the overwhelming common
		// case) still occupy exactly one byte.
		dataLen, err := c.readCompactU16("instruction data length")
		if err != nil {
			return nil, err
		}
		if dataLen > MaxInstructionData {
			return nil, c.malformedAt("instruction data length exceeds maximum")
		}
		idata, err := c.readN(dataLen, "instruction data")
		if err != nil {
			return nil, err
		}
		dcopy := make([]byte, len(idata))
		copy(dcopy, idata)

		out[i] = types.CompiledInstruction{
			ProgramIDIndex: programIDIndex,
			Accounts:       accIdx,
			Data:           dcopy,
		}
	}
	return out, nil
}

func decodeV0(data []byte) (*types.Transaction, error) {
	c := newCursor(data)

	first, err := c.readByte("signature count")
	if err != nil {
		return nil, err
	}
	sigCount := first & 0x7F
	signatures := make([]types.Signature, sigCount)
	for i := range signatures {
		sig, err := c.readSignature("signature")
		if err != nil {
			return nil, err
		}
		signatures[i] = sig
	}

	if b, ok := c.peekByte(); ok && b&0x80 != 0 {
		if _, err := c.readCompactU16("redundant length prefix"); err != nil {
			return nil, err
		}
	}

	msg, err := decodeMessage(c, false)
	if err != nil {
		return nil, err
	}
	if int(sigCount) != int(msg.Header.NumRequiredSignatures) {
		return nil, c.malformedAt("signature count does not match header.num_required_signatures")
	}

	lookupCount, err := c.readByte("address table lookup count")
	if err != nil {
		return nil, err
	}
	lookups := make([]types.AddressTableLookup, lookupCount)
	for i := range lookups {
		tableKey, err := c.readPubkey("lookup table key")
		if err != nil {
			return nil, err
		}
		writableLen, err := c.readByte("writable index count")
		if err != nil {
			return nil, err
		}
		writable, err := c.readN(int(writableLen), "writable indices")
		if err != nil {
			return nil, err
		}
		readonlyLen, err := c.readByte("readonly index count")
		if err != nil {
			return nil, err
		}
		readonly, err := c.readN(int(readonlyLen), "readonly indices")
		if err != nil {
			return nil, err
		}
		w := make([]uint8, len(writable))
		copy(w, writable)
		r := make([]uint8, len(readonly))
		copy(r, readonly)
		lookups[i] = types.AddressTableLookup{TableKey: tableKey, WritableIndexes: w, ReadonlyIndexes: r}
	}

	v0 := &types.V0Message{
		Header:              msg.Header,
		AccountKeys:         msg.AccountKeys,
		RecentBlockhash:     msg.RecentBlockhash,
		Instructions:        msg.Instructions,
		AddressTableLookups: lookups,
	}

	return &types.Transaction{Signatures: signatures, IsV0: true, V0Message: v0}, nil
}
