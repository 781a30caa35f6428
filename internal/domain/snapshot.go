package domain

// Snapshot is the full serialized bundle of one identity's financial state,
// written to the persistence adapter after every mutation.
type Snapshot struct {
	User         *Identity     `json:"user"`
	Wallets      []Wallet      `json:"wallets"`
	Transactions []Transaction `json:"transactions"`
	Investments  []Investment  `json:"investments"`
	Cards        []Card        `json:"cards"`
	Rewards      []Reward      `json:"rewards"`
}
