package domain

import "errors"

// Reward represents a redeemable partner deal. Claimed is one-way: once set
// it never flips back.
type Reward struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Deal    string `json:"deal"`
	Logo    string `json:"logo"`
	Color   string `json:"color"`
	Cost    int    `json:"cost"`
	Claimed bool   `json:"claimed"`
}

// Validate ensures the reward adheres to domain rules
func (r *Reward) Validate() error {
	if r.ID == "" {
		return errors.New("reward id cannot be empty")
	}
	if r.Brand == "" {
		return errors.New("reward brand cannot be empty")
	}
	if r.Cost <= 0 {
		return errors.New("reward cost must be positive")
	}
	return nil
}

// RewardDraft is an unclaimed reward description coming from an external
// generator. Drafts carry no id and no claimed flag; the store assigns both
// when merging. The schema is strict: generator output that does not satisfy
// Validate is rejected rather than trusted.
type RewardDraft struct {
	Brand string `json:"brand"`
	Deal  string `json:"deal"`
	Logo  string `json:"logo"`
	Cost  int    `json:"cost"`
}

// Validate ensures the draft satisfies the reward schema
func (d *RewardDraft) Validate() error {
	if d.Brand == "" {
		return errors.New("reward draft brand cannot be empty")
	}
	if d.Deal == "" {
		return errors.New("reward draft deal cannot be empty")
	}
	if d.Logo == "" {
		return errors.New("reward draft logo cannot be empty")
	}
	if d.Cost <= 0 {
		return errors.New("reward draft cost must be positive")
	}
	return nil
}
