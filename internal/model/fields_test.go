package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDealStage(t *testing.T) {
	t.Run("recognized", func(t *testing.T) {
		stage, ok := ParseDealStage("  ClosedWon ")
		assert.True(t, ok)
		assert.Equal(t, StageClosedWon, stage)
	})

	t.Run("unrecognized", func(t *testing.T) {
		_, ok := ParseDealStage("negotiating")
		assert.False(t, ok)
	})
}

func TestEstimateFieldsDealName(t *testing.T) {
	tests := []struct {
		name string
		est  EstimateFields
		want string
	}{
		{
			name: "both fields",
			est:  EstimateFields{FacilityType: "Surgery Center", Location: "Orange County"},
			want: "Surgery Center - Orange County",
		},
		{
			name: "missing facility",
			est:  EstimateFields{Location: "Costa Mesa"},
			want: "Project - Costa Mesa",
		},
		{
			name: "missing location",
			est:  EstimateFields{FacilityType: "Medical Office"},
			want: "Medical Office - TBD",
		},
		{
			name: "empty",
			est:  EstimateFields{},
			want: "Project - TBD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.est.DealName())
		})
	}
}
