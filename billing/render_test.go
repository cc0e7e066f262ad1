package billing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTrimmed(t *testing.T) {
	assert.Equal(t, "2.5", FormatTrimmed(decimal.RequireFromString("2.500000"), 6))
	assert.Equal(t, "2", FormatTrimmed(decimal.RequireFromString("2.000"), 6))
	assert.Equal(t, "0.123457", FormatTrimmed(decimal.RequireFromString("0.1234565"), 6))
}

func TestRenderBreakdownIsStable(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:       1_000_000,
			CategoryReasoningTokens: 500_000,
		},
	}
	result, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0.5), []ExtraBillingItem{{Key: "tool", UnitPrice: 0.04, CallCount: 10}})
	require.NoError(t, err)

	first := RenderBreakdown(result)
	assert.True(t, strings.Contains(first, "2.7"), first)
	for i := 0; i < 10; i++ {
		again, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0.5), []ExtraBillingItem{{Key: "tool", UnitPrice: 0.04, CallCount: 10}})
		require.NoError(t, err)
		assert.Equal(t, first, RenderBreakdown(again))
	}
}
