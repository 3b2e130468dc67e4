package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedCost(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "total line",
			text: "Labor: $400,000\nMaterials: $350,000\nTotal: $1,200,000",
			want: 1200000,
		},
		{
			name: "total takes precedence over bare large amount",
			text: "Contingency fund of $999,999 set aside.\nTotal: $1,200,000",
			want: 1200000,
		},
		{
			name: "uppercase total",
			text: "PROJECT TOTAL ... $2,500,000",
			want: 2500000,
		},
		{
			name: "estimated cost label",
			text: "Estimated Cost for the build: $850,000 over 14 months",
			want: 850000,
		},
		{
			name: "bare six digit amount",
			text: "The facility budget is $750,000 per current plans.",
			want: 750000,
		},
		{
			name: "small bare amount ignored",
			text: "Permit fees run about $5,000 in this county.",
			want: 0,
		},
		{
			name: "no recognizable pattern",
			text: "We will send a detailed breakdown next week.",
			want: 0,
		},
		{
			name: "empty text",
			text: "",
			want: 0,
		},
		{
			name: "digits before the dollar sign ignored",
			text: "Total across 3 phases: $500,000",
			want: 500000,
		},
		{
			name: "case insensitive total",
			text: "grand total comes to $3,100,000",
			want: 3100000,
		},
		{
			name: "first large amount wins within pattern",
			text: "$1,500,000 for phase one and $2,000,000 for phase two",
			want: 1500000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimatedCost(tt.text), 0.001)
		})
	}
}

func TestCostPatternOrder(t *testing.T) {
	// The priority list itself is part of the contract.
	names := make([]string, len(costPatterns))
	for i, p := range costPatterns {
		names[i] = p.name
	}
	assert.Equal(t, []string{"total", "total_upper", "estimated_cost", "large_amount"}, names)
}
