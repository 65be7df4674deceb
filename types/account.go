package types

// MaxAccountDataLen is the maximum permitted size, in bytes, of a single
// account's data buffer (§5 resource bounds).
const MaxAccountDataLen = 10 * 1024 * 1024

// Account is the canonical state record held by the account store.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      Pubkey
	Executable bool
	RentEpoch  uint64
}

// NewDefaultAccount returns the zero-value account created implicitly the
// first time an instruction references an otherwise-unknown key: zero
// lamports, empty data, owned by the System Program, non-executable.
func NewDefaultAccount() *Account {
	return &Account{Owner: SystemProgramID}
}

// Clone returns a deep copy of a, safe to hand out as a scratch copy during
// instruction dispatch.
func (a *Account) Clone() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{
		Lamports:   a.Lamports,
		Data:       data,
		Owner:      a.Owner,
		Executable: a.Executable,
		RentEpoch:  a.RentEpoch,
	}
}

// Resize replaces Data with a zero-filled buffer of the given size,
// per the "re-allocation replaces the byte sequence with zero-filled
// bytes of the new size" invariant.
func (a *Account) Resize(size uint64) {
	a.Data = make([]byte, size)
}

// SetExecutable sets Executable to true. Executable is monotonic during a
// single transaction; there is deliberately no way to clear it.
func (a *Account) SetExecutable() {
	a.Executable = true
}
