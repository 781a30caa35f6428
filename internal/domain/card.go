package domain

import (
	"errors"
	"strings"
)

// CardType represents the form factor of a card
type CardType string

const (
	CardTypeVirtual  CardType = "Virtual"
	CardTypePhysical CardType = "Physical"
)

// CardStatus represents whether a card can currently be used
type CardStatus string

const (
	CardStatusActive CardStatus = "active"
	CardStatusFrozen CardStatus = "frozen"
)

// Toggled returns the opposite status. Applying it twice is the identity.
func (s CardStatus) Toggled() CardStatus {
	if s == CardStatusActive {
		return CardStatusFrozen
	}
	return CardStatusActive
}

// Card represents an issued payment card with a synthetic number
type Card struct {
	ID         string     `json:"id"`
	CardNumber string     `json:"cardNumber"`
	LastFour   string     `json:"lastFour"`
	Expiry     string     `json:"expiry"`
	Type       CardType   `json:"type"`
	Status     CardStatus `json:"status"`
	Color      string     `json:"color"`
}

// Validate ensures the card adheres to domain rules.
// LastFour must match the final four digits of the card number once
// separators are stripped.
func (c *Card) Validate() error {
	if c.ID == "" {
		return errors.New("card id cannot be empty")
	}
	if c.Type != CardTypeVirtual && c.Type != CardTypePhysical {
		return errors.New("card type must be Virtual or Physical")
	}
	if c.Status != CardStatusActive && c.Status != CardStatusFrozen {
		return errors.New("card status must be active or frozen")
	}
	digits := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(digits) < 4 {
		return errors.New("card number must carry at least four digits")
	}
	if c.LastFour != digits[len(digits)-4:] {
		return errors.New("card lastFour must match the card number")
	}
	return nil
}
