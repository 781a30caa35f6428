package domain

import (
	"errors"
	"strings"
)

// Identity represents the authenticated profile whose financial state is
// active. It is created and owned outside the financial store; the store only
// ever touches the reward point balance (through the identity service).
type Identity struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
	IsAddressVerified bool   `json:"isAddressVerified"`
	RewardPoints      int    `json:"rewardPoints"`
	Password          string `json:"password,omitempty"`
	Username          string `json:"username,omitempty"`
	Birthday          string `json:"birthday,omitempty"`
}

// EmailKey returns the case-insensitive lookup key for this identity.
func (i *Identity) EmailKey() string {
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// Validate ensures the identity adheres to domain rules
func (i *Identity) Validate() error {
	if i.ID == "" {
		return errors.New("identity id cannot be empty")
	}
	if i.Email == "" {
		return errors.New("identity email cannot be empty")
	}
	if i.RewardPoints < 0 {
		return errors.New("identity reward points cannot be negative")
	}
	return nil
}
