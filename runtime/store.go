package runtime

import "github.com/Vistara-Labs/terminator-dancer/types"

// AccountStore is the canonical mapping from Pubkey to Account (§3). Keys
// are created implicitly the first time they're referenced; nothing is ever
// evicted by the core.
type AccountStore struct {
	accounts map[types.Pubkey]*types.Account
}

// NewAccountStore returns an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[types.Pubkey]*types.Account)}
}

// Get returns the account at pk and whether it exists, without creating it.
func (s *AccountStore) Get(pk types.Pubkey) (*types.Account, bool) {
	acc, ok := s.accounts[pk]
	return acc, ok
}

// GetOrCreate returns the account at pk, creating and storing the default
// account (lamports=0, empty data, owner=System Program, non-executable) if
// it does not yet exist.
func (s *AccountStore) GetOrCreate(pk types.Pubkey) *types.Account {
	if acc, ok := s.accounts[pk]; ok {
		return acc
	}
	acc := types.NewDefaultAccount()
	s.accounts[pk] = acc
	return acc
}

// Put stores acc under pk, overwriting whatever was there.
func (s *AccountStore) Put(pk types.Pubkey, acc *types.Account) {
	s.accounts[pk] = acc
}

// Fund adds lamports to the account at pk, creating it if absent.
// fund(pk, 0) never touches the store, satisfying the creation-idempotence
// invariant (§8) for both existing and absent accounts.
func (s *AccountStore) Fund(pk types.Pubkey, lamports uint64) {
	if lamports == 0 {
		return
	}
	acc := s.GetOrCreate(pk)
	acc.Lamports += lamports
}

// TotalBalance sums lamports across every account in the store. Carried
// forward from the reference implementation's get_total_balance (not in
// spec.md's literal wording, but directly useful for asserting lamport
// conservation across a whole transaction).
func (s *AccountStore) TotalBalance() uint64 {
	var total uint64
	for _, acc := range s.accounts {
		total += acc.Lamports
	}
	return total
}

// Count returns the number of distinct accounts known to the store.
func (s *AccountStore) Count() int {
	return len(s.accounts)
}
