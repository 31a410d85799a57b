package domain

// AccountSnapshot holds the wallet balance at the moment it was fetched.
// Balance changes between screens, so a snapshot must be re-fetched
// immediately before every decision that depends on it.
type AccountSnapshot struct {
	AvailableBalance Money `json:"available_balance"`
}
