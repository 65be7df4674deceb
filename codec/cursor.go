// Package codec implements the Solana-compatible wire-format parser: compact-u16
// integers, legacy and v0 transaction decoding/encoding, and address-lookup-table
// resolution.
//
// Grounded on _examples/original_source/src/solana_format.rs's manual parser
// (SolanaTransactionParser), which performs the same bound checks by hand
// rather than through a generic serde/borsh layer.
package codec

import (
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// cursor is a bounds-checked reader over a transaction's raw bytes, tracking
// its position so failures can report an offset.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) truncated(reason string) error {
	return &types.TruncatedInput{Reason: reason}
}

func (c *cursor) malformedAt(reason string) error {
	return types.NewMalformedTransactionAt(reason, c.pos)
}

// readByte reads a single byte, advancing the cursor.
func (c *cursor) readByte(field string) (byte, error) {
	if c.remaining() < 1 {
		return 0, c.truncated("expected " + field)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// readN reads exactly n bytes, advancing the cursor.
func (c *cursor) readN(n int, field string) ([]byte, error) {
	if c.remaining() < n {
		return nil, c.truncated("expected " + field)
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *cursor) readPubkey(field string) (types.Pubkey, error) {
	b, err := c.readN(types.PubkeyLength, field)
	if err != nil {
		return types.Pubkey{}, err
	}
	return types.BytesToPubkey(b), nil
}

func (c *cursor) readHash(field string) (types.Hash, error) {
	b, err := c.readN(types.HashLength, field)
	if err != nil {
		return types.Hash{}, err
	}
	return types.BytesToHash(b), nil
}

func (c *cursor) readSignature(field string) (types.Signature, error) {
	b, err := c.readN(types.SignatureLength, field)
	if err != nil {
		return types.Signature{}, err
	}
	return types.BytesToSignature(b), nil
}

func (c *cursor) peekByte() (byte, bool) {
	if c.remaining() < 1 {
		return 0, false
	}
	return c.data[c.pos], true
}
