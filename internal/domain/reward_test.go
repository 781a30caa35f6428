package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   RewardDraft
		wantErr bool
	}{
		{name: "complete draft passes", draft: RewardDraft{Brand: "Apple", Deal: "5% Cashback on Macs", Logo: "🍎", Cost: 2500}, wantErr: false},
		{name: "missing brand fails", draft: RewardDraft{Deal: "deal", Logo: "🏠", Cost: 500}, wantErr: true},
		{name: "missing deal fails", draft: RewardDraft{Brand: "Airbnb", Logo: "🏠", Cost: 500}, wantErr: true},
		{name: "missing logo fails", draft: RewardDraft{Brand: "Airbnb", Deal: "deal", Cost: 500}, wantErr: true},
		{name: "zero cost fails", draft: RewardDraft{Brand: "Uber", Deal: "deal", Logo: "🚗", Cost: 0}, wantErr: true},
		{name: "negative cost fails", draft: RewardDraft{Brand: "Uber", Deal: "deal", Logo: "🚗", Cost: -100}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
