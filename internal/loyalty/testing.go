package loyalty

// SeedAccount is a test helper that overwrites balance and points for an
// account when using the in-memory store.
func SeedAccount(s Store, accountID string, balance, points int64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		account := mem.accounts[accountID]
		account.Balance = balance
		account.Points = points
		mem.accounts[accountID] = account
	}
}
