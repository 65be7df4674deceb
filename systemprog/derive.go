package systemprog

import (
	"github.com/Vistara-Labs/terminator-dancer/cryptoiface"
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// pdaMarker is appended to the hashed seed material, matching upstream
// Solana's program-derived-address scheme.
const pdaMarker = "ProgramDerivedAddress"

// DeriveAddress computes the address a seeded System Program instruction
// expects its target account to occupy: sha256(base || seed || owner ||
// "ProgramDerivedAddress"). Ported from
// _examples/cielu-go-solana/types/base/keys.go's CreateProgramAddress, with
// the off-curve rejection check dropped — this package does not validate
// that a seeded instruction's accounts actually match their derived
// address (§9 Open Question "seeded instructions"), so DeriveAddress is
// only ever used for diagnostic logging, never for accept/reject decisions.
func DeriveAddress(base types.Pubkey, seed string, owner types.Pubkey) types.Pubkey {
	buf := make([]byte, 0, types.PubkeyLength+len(seed)+types.PubkeyLength+len(pdaMarker))
	buf = append(buf, base[:]...)
	buf = append(buf, seed...)
	buf = append(buf, owner[:]...)
	buf = append(buf, pdaMarker...)
	digest := cryptoiface.Sha256(buf)
	return types.BytesToPubkey(digest[:])
}
