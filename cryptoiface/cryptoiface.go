// Package cryptoiface provides the crypto primitives this engine treats as
// externally-supplied, fixed-contract functions (§9: "crypto as an
// interface, not a dependency"). The contracts are pure and deterministic;
// this package's implementations satisfy them using the Go standard library
// plus a third-party blake3, mirroring how even the reference
// implementation's "native" crypto path wraps standard crates
// (_examples/original_source/src/firedancer_bindings.rs).
package cryptoiface

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/Vistara-Labs/terminator-dancer/types"
	"lukechampine.com/blake3"
)

// VerifyEd25519 reports whether sig is a valid Ed25519 signature over msg
// by pk.
func VerifyEd25519(pk types.Pubkey, msg []byte, sig types.Signature) bool {
	return ed25519.Verify(pk[:], msg, sig[:])
}

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Blake3 returns the 32-byte BLAKE3 digest of data.
func Blake3(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// Keypair is a test-fixture Ed25519 keypair.
type Keypair struct {
	Pubkey     types.Pubkey
	PrivateKey ed25519.PrivateKey
}

// GenerateKeypair creates a fresh Ed25519 keypair for use in tests.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	return &Keypair{Pubkey: types.BytesToPubkey(pub), PrivateKey: priv}, nil
}

// Sign signs msg with the keypair's private key.
func (k *Keypair) Sign(msg []byte) types.Signature {
	return types.BytesToSignature(ed25519.Sign(k.PrivateKey, msg))
}
