package codec

import (
	"encoding/binary"

	"github.com/Vistara-Labs/terminator-dancer/cryptoiface"
	"github.com/Vistara-Labs/terminator-dancer/types"
)

// ResolveLookups expands a v0 message's address-lookup-table references into
// a legacy-shaped message. Because this core does not maintain the lookup
// tables themselves, each appended slot is filled with a deterministic
// placeholder Pubkey derived from the table key and the looked-up index
// (§9's Open Question resolution — SPEC_FULL.md §D.1), rather than the
// reference implementation's non-deterministic SolanaPubkey::new_unique().
//
// Resolution order: all writable entries across all lookups, in lookup
// order, then all readonly entries, in lookup order. Instruction indices
// are untouched and remain valid against the extended key list.
func ResolveLookups(v0 *types.V0Message) (*types.Message, error) {
	keys := make([]types.Pubkey, len(v0.AccountKeys))
	copy(keys, v0.AccountKeys)

	for _, lookup := range v0.AddressTableLookups {
		for _, idx := range lookup.WritableIndexes {
			keys = append(keys, placeholderAddress(lookup.TableKey, idx))
		}
	}
	for _, lookup := range v0.AddressTableLookups {
		for _, idx := range lookup.ReadonlyIndexes {
			keys = append(keys, placeholderAddress(lookup.TableKey, idx))
		}
	}

	return &types.Message{
		Header:          v0.Header,
		AccountKeys:     keys,
		RecentBlockhash: v0.RecentBlockhash,
		Instructions:    v0.Instructions,
	}, nil
}

// placeholderAddress derives a deterministic stand-in Pubkey for a lookup
// table entry this core cannot actually resolve.
func placeholderAddress(tableKey types.Pubkey, index uint8) types.Pubkey {
	buf := make([]byte, types.PubkeyLength+2)
	copy(buf, tableKey[:])
	binary.LittleEndian.PutUint16(buf[types.PubkeyLength:], uint16(index))
	digest := cryptoiface.Blake3(buf)
	return types.Pubkey(digest)
}
