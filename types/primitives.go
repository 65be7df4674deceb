// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

// Package types defines the core data model of the execution engine:
// fixed-size identifiers, accounts, messages, transactions, the
// per-transaction execution context, and the error-kind taxonomy.
package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
)

// Lengths of the three fixed-size wire primitives, in bytes.
const (
	PubkeyLength    = 32
	SignatureLength = 64
	HashLength      = 32
)

// Pubkey is a 32-byte identifier for both user accounts and programs.
// The all-zero value is the System Program address.
type Pubkey [PubkeyLength]byte

// SystemProgramID is the built-in program at the all-zero Pubkey.
var SystemProgramID = Pubkey{}

// BytesToPubkey returns a Pubkey right-aligned from b.
func BytesToPubkey(b []byte) (p Pubkey) {
	p.SetBytes(b)
	return
}

// BigToPubkey returns a Pubkey with the byte values of b.
func BigToPubkey(b *big.Int) Pubkey { return BytesToPubkey(b.Bytes()) }

// Base58ToPubkey decodes a base58-encoded Pubkey.
func Base58ToPubkey(s string) Pubkey {
	d, _ := base58.Decode(s)
	return BytesToPubkey(d)
}

// Cmp compares two Pubkeys lexicographically over their raw bytes.
func (p Pubkey) Cmp(other Pubkey) int { return bytes.Compare(p[:], other[:]) }

// Bytes returns the raw bytes of p.
func (p Pubkey) Bytes() []byte { return p[:] }

// Big returns p interpreted as a big-endian integer.
func (p Pubkey) Big() *big.Int { return new(big.Int).SetBytes(p[:]) }

// Base58 renders p in base58, the human form used everywhere in this system.
func (p Pubkey) Base58() string { return base58.Encode(p[:]) }

// String renders p in base58.
func (p Pubkey) String() string { return p.Base58() }

// IsZero reports whether p is the all-zero System Program address.
func (p Pubkey) IsZero() bool { return p == SystemProgramID }

// SetBytes sets p to the value of b, right-aligned and truncated from the left
// if b is longer than PubkeyLength.
func (p *Pubkey) SetBytes(b []byte) {
	if len(b) > len(p) {
		b = b[len(b)-PubkeyLength:]
	}
	copy(p[PubkeyLength-len(b):], b)
}

// MarshalText renders p as a base58 string.
func (p Pubkey) MarshalText() ([]byte, error) {
	out, err := json.Marshal(p.Base58())
	return out[1 : len(out)-1], err
}

// UnmarshalText parses a base58-rendered Pubkey.
func (p *Pubkey) UnmarshalText(input []byte) error {
	d, err := base58.Decode(string(input))
	if err != nil {
		return fmt.Errorf("decode pubkey base58: %w", err)
	}
	p.SetBytes(d)
	return nil
}

// UnmarshalJSON parses a JSON string containing a base58-rendered Pubkey.
func (p *Pubkey) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}

// Scan implements database/sql's Scanner for Pubkey.
func (p *Pubkey) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("can't scan %T into Pubkey", src)
	}
	if len(b) != PubkeyLength {
		return fmt.Errorf("can't scan []byte of len %d into Pubkey, want %d", len(b), PubkeyLength)
	}
	copy(p[:], b)
	return nil
}

// Value implements database/sql's Valuer for Pubkey.
func (p Pubkey) Value() (driver.Value, error) { return p[:], nil }

// Signature is a 64-byte Ed25519 signature, opaque except to the crypto interface.
type Signature [SignatureLength]byte

// BytesToSignature returns a Signature right-aligned from b.
func BytesToSignature(b []byte) (s Signature) {
	s.SetBytes(b)
	return
}

// Base58ToSignature decodes a base58-encoded Signature.
func Base58ToSignature(s string) Signature {
	d, _ := base58.Decode(s)
	return BytesToSignature(d)
}

// Cmp compares two Signatures lexicographically over their raw bytes.
func (s Signature) Cmp(other Signature) int { return bytes.Compare(s[:], other[:]) }

// Bytes returns the raw bytes of s.
func (s Signature) Bytes() []byte { return s[:] }

// Base58 renders s in base58.
func (s Signature) Base58() string { return base58.Encode(s[:]) }

// String renders s in base58.
func (s Signature) String() string { return s.Base58() }

// IsZero reports whether s is the zero signature (unsigned placeholder).
func (s Signature) IsZero() bool { return s == Signature{} }

// SetBytes sets s to the value of b, right-aligned.
func (s *Signature) SetBytes(b []byte) {
	if len(b) > len(s) {
		b = b[len(b)-SignatureLength:]
	}
	copy(s[SignatureLength-len(b):], b)
}

// MarshalText renders s as a base58 string.
func (s Signature) MarshalText() ([]byte, error) {
	out, err := json.Marshal(s.Base58())
	return out[1 : len(out)-1], err
}

// UnmarshalText parses a base58-rendered Signature.
func (s *Signature) UnmarshalText(input []byte) error {
	d, err := base58.Decode(string(input))
	if err != nil {
		return fmt.Errorf("decode signature base58: %w", err)
	}
	s.SetBytes(d)
	return nil
}

// UnmarshalJSON parses a JSON string containing a base58-rendered Signature.
func (s *Signature) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(str))
}

// Hash is a 32-byte content digest, used for recent-blockhash values.
type Hash [HashLength]byte

// BytesToHash returns a Hash right-aligned from b.
func BytesToHash(b []byte) (h Hash) {
	h.SetBytes(b)
	return
}

// Base58ToHash decodes a base58-encoded Hash.
func Base58ToHash(s string) Hash {
	d, _ := base58.Decode(s)
	return BytesToHash(d)
}

// Cmp compares two Hashes lexicographically over their raw bytes.
func (h Hash) Cmp(other Hash) int { return bytes.Compare(h[:], other[:]) }

// Bytes returns the raw bytes of h.
func (h Hash) Bytes() []byte { return h[:] }

// Base58 renders h in base58.
func (h Hash) Base58() string { return base58.Encode(h[:]) }

// String renders h in base58.
func (h Hash) String() string { return h.Base58() }

// SetBytes sets h to the value of b, right-aligned.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// MarshalText renders h as a base58 string.
func (h Hash) MarshalText() ([]byte, error) {
	out, err := json.Marshal(h.Base58())
	return out[1 : len(out)-1], err
}

// UnmarshalText parses a base58-rendered Hash.
func (h *Hash) UnmarshalText(input []byte) error {
	d, err := base58.Decode(string(input))
	if err != nil {
		return fmt.Errorf("decode hash base58: %w", err)
	}
	h.SetBytes(d)
	return nil
}

// UnmarshalJSON parses a JSON string containing a base58-rendered Hash.
func (h *Hash) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	return h.UnmarshalText([]byte(s))
}
