// Package systemprog implements the built-in System Program: the closed
// eight-instruction set for account creation, assignment, lamport transfer,
// and space allocation (§4.2).
//
// Grounded on _examples/original_source/src/system_program.rs's
// SystemInstruction enum and process_instruction dispatch.
package systemprog

import (
	"encoding/binary"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

// Tag identifies a System Program instruction variant by the first byte of
// its instruction data.
type Tag uint8

const (
	TagCreateAccount         Tag = 0
	TagAssign                Tag = 1
	TagTransfer              Tag = 2
	TagCreateAccountWithSeed Tag = 3
	TagAllocate              Tag = 8
	TagAllocateWithSeed      Tag = 9
	TagAssignWithSeed        Tag = 10
	TagTransferWithSeed      Tag = 11
)

// Instruction is the decoded form of a System Program instruction. Not
// every field is populated for every Tag; see §4.2's payload table.
type Instruction struct {
	Tag Tag

	Lamports uint64
	Space    uint64
	Owner    types.Pubkey

	Base     types.Pubkey
	Seed     string
	FromSeed string
}

// Decode parses a System Program instruction from raw instruction data.
// The first byte is the tag; the remainder is decoded positionally per
// variant, with little-endian integers and 4-byte-length-prefixed strings.
func Decode(data []byte) (*Instruction, error) {
	r := &reader{data: data}
	tagByte, err := r.byte()
	if err != nil {
		return nil, programError("missing instruction tag")
	}

	ins := &Instruction{Tag: Tag(tagByte)}
	switch ins.Tag {
	case TagCreateAccount:
		if ins.Lamports, err = r.u64(); err != nil {
			return nil, programError("create_account: missing lamports")
		}
		if ins.Space, err = r.u64(); err != nil {
			return nil, programError("create_account: missing space")
		}
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("create_account: missing owner")
		}
	case TagAssign:
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("assign: missing owner")
		}
	case TagTransfer:
		if ins.Lamports, err = r.u64(); err != nil {
			return nil, programError("transfer: missing lamports")
		}
	case TagCreateAccountWithSeed:
		if ins.Base, err = r.pubkey(); err != nil {
			return nil, programError("create_account_with_seed: missing base")
		}
		if ins.Seed, err = r.seedString(); err != nil {
			return nil, programError("create_account_with_seed: missing seed")
		}
		if ins.Lamports, err = r.u64(); err != nil {
			return nil, programError("create_account_with_seed: missing lamports")
		}
		if ins.Space, err = r.u64(); err != nil {
			return nil, programError("create_account_with_seed: missing space")
		}
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("create_account_with_seed: missing owner")
		}
	case TagAllocate:
		if ins.Space, err = r.u64(); err != nil {
			return nil, programError("allocate: missing space")
		}
	case TagAllocateWithSeed:
		if ins.Base, err = r.pubkey(); err != nil {
			return nil, programError("allocate_with_seed: missing base")
		}
		if ins.Seed, err = r.seedString(); err != nil {
			return nil, programError("allocate_with_seed: missing seed")
		}
		if ins.Space, err = r.u64(); err != nil {
			return nil, programError("allocate_with_seed: missing space")
		}
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("allocate_with_seed: missing owner")
		}
	case TagAssignWithSeed:
		if ins.Base, err = r.pubkey(); err != nil {
			return nil, programError("assign_with_seed: missing base")
		}
		if ins.Seed, err = r.seedString(); err != nil {
			return nil, programError("assign_with_seed: missing seed")
		}
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("assign_with_seed: missing owner")
		}
	case TagTransferWithSeed:
		if ins.Lamports, err = r.u64(); err != nil {
			return nil, programError("transfer_with_seed: missing lamports")
		}
		if ins.FromSeed, err = r.seedString(); err != nil {
			return nil, programError("transfer_with_seed: missing from_seed")
		}
		if ins.Owner, err = r.pubkey(); err != nil {
			return nil, programError("transfer_with_seed: missing from_owner")
		}
	default:
		return nil, programError("unknown system instruction tag")
	}
	return ins, nil
}

func programError(detail string) error {
	return &types.ProgramError{ProgramID: types.SystemProgramID, Detail: detail}
}

// reader is a small little-endian byte reader local to instruction decoding.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) byte() (byte, error) {
	if r.pos+1 > len(r.data) {
		return 0, errShort
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errShort
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errShort
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) pubkey() (types.Pubkey, error) {
	if r.pos+types.PubkeyLength > len(r.data) {
		return types.Pubkey{}, errShort
	}
	pk := types.BytesToPubkey(r.data[r.pos : r.pos+types.PubkeyLength])
	r.pos += types.PubkeyLength
	return pk, nil
}

func (r *reader) seedString() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.data) {
		return "", errShort
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

var errShort = &shortDataErr{}

type shortDataErr struct{}

func (*shortDataErr) Error() string { return "short instruction data" }
