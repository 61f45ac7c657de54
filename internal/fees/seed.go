package fees

// SeedAccounts returns the fee ledgers loaded at process start.
func SeedAccounts() map[string]Account {
	return map[string]Account{
		"s001": {
			Balance: 1500.00,
			Items: []Item{
				{Desc: "Tuition", Amount: 1500.00},
			},
		},
		"s002": {
			Balance: 0,
			Items:   []Item{},
		},
	}
}
