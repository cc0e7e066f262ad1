package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokensPrice(input, output, discount float64) PriceData {
	return PriceData{
		InputRate:           input,
		OutputRate:          output,
		FlatRate:            1,
		CacheRateMultiplier: 1,
		GroupDiscount:       discount,
		Mode:                BillingModeTokens,
	}
}

func TestComputeChargeScenarioA(t *testing.T) {
	// 1M 输入 × 2.00 + 0.5M 输出 × 6.00 = 5.00，分组倍率 0.5 → 2.50
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:       1_000_000,
			CategoryReasoningTokens: 500_000,
		},
	}
	result, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0.5), nil)
	require.NoError(t, err)
	assert.True(t, result.TotalQuota.Equal(decimal.RequireFromString("2.5")), "total=%s", result.TotalQuota)
	assert.True(t, result.OriginalQuota.Equal(decimal.RequireFromString("5")), "original=%s", result.OriginalQuota)
}

func TestComputeChargeScenarioBExtras(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:       1_000_000,
			CategoryReasoningTokens: 500_000,
		},
	}
	extras := []ExtraBillingItem{{Key: "image_generation", UnitPrice: 0.04, CallCount: 10}}
	result, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0.5), extras)
	require.NoError(t, err)
	assert.True(t, result.TotalQuota.Equal(decimal.RequireFromString("2.7")), "total=%s", result.TotalQuota)
	assert.True(t, result.OriginalQuota.Equal(decimal.RequireFromString("5.4")), "original=%s", result.OriginalQuota)
	require.Len(t, result.ExtraContributions, 1)
	assert.True(t, result.ExtraContributions[0].Amount.Equal(decimal.RequireFromString("0.4")))
}

func TestComputeChargeScenarioDZeroDiscount(t *testing.T) {
	// 分组倍率为 0 表示未知折扣：不做除法，原价按实收上报
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{CategoryInputText: 1_000_000},
	}
	result, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0), nil)
	require.NoError(t, err)
	assert.True(t, result.TotalQuota.IsZero())
	assert.True(t, result.OriginalQuota.Equal(result.TotalQuota))
}

func TestComputeChargeSuppliedOriginalWins(t *testing.T) {
	event := &UsageEvent{
		Counts:   map[TokenCategory]int64{CategoryInputText: 1_000_000},
		Metadata: map[string]any{"original_quota": 9.99},
	}
	result, err := ComputeCharge(event, tokensPrice(2.00, 6.00, 0.5), nil)
	require.NoError(t, err)
	assert.True(t, result.OriginalQuota.Equal(decimal.RequireFromString("9.99")))
}

func TestComputeChargeDiscountIdentity(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:       123_456,
			CategoryCachedTokens:    7_890,
			CategoryReasoningTokens: 45_678,
		},
	}
	price := tokensPrice(1.75, 8.4, 1)
	price.CacheRateMultiplier = 0.25
	result, err := ComputeCharge(event, price, []ExtraBillingItem{{Key: "tool", UnitPrice: 0.002, CallCount: 3}})
	require.NoError(t, err)
	assert.True(t, result.TotalQuota.Equal(result.OriginalQuota))
}

func TestComputeChargeCacheMultiplier(t *testing.T) {
	// 缓存类目按缓存倍率计价：1M cached × 2.00 × 0.1 = 0.2
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{CategoryCachedTokens: 1_000_000},
	}
	price := tokensPrice(2.00, 6.00, 1)
	price.CacheRateMultiplier = 0.1
	result, err := ComputeCharge(event, price, nil)
	require.NoError(t, err)
	assert.True(t, result.TotalQuota.Equal(decimal.RequireFromString("0.2")), "total=%s", result.TotalQuota)
}

func TestComputeChargeTimesModeIndependence(t *testing.T) {
	price := PriceData{
		InputRate: 1, OutputRate: 1, FlatRate: 0.1,
		CacheRateMultiplier: 1, GroupDiscount: 0.5,
		Mode: BillingModeTimes,
	}
	small := &UsageEvent{Counts: map[TokenCategory]int64{CategoryInputText: 10}}
	large := &UsageEvent{Counts: map[TokenCategory]int64{CategoryInputText: 10_000_000, CategoryReasoningTokens: 5_000_000}}

	a, err := ComputeCharge(small, price, nil)
	require.NoError(t, err)
	b, err := ComputeCharge(large, price, nil)
	require.NoError(t, err)

	assert.True(t, a.TotalQuota.Equal(b.TotalQuota))
	assert.True(t, a.TotalQuota.Equal(decimal.RequireFromString("0.05")))
	// token 数照常上报，仅用于展示
	assert.Equal(t, int64(10_000_000), b.TotalInputTokens)
	assert.Equal(t, int64(5_000_000), b.TotalOutputTokens)
}

func TestComputeChargeTimesModeExtras(t *testing.T) {
	price := PriceData{
		FlatRate: 1.0, InputRate: 1, OutputRate: 1,
		CacheRateMultiplier: 1, GroupDiscount: 0.5,
		Mode: BillingModeTimes,
	}
	result, err := ComputeCharge(&UsageEvent{}, price, []ExtraBillingItem{{Key: "search", UnitPrice: 0.01, CallCount: 4}})
	require.NoError(t, err)
	// 0.5 + 0.04*0.5 = 0.52
	assert.True(t, result.TotalQuota.Equal(decimal.RequireFromString("0.52")), "total=%s", result.TotalQuota)
}

func TestComputeChargeDeterminism(t *testing.T) {
	event := &UsageEvent{
		RequestId: "req-1",
		Counts: map[TokenCategory]int64{
			CategoryInputText:         333_333,
			CategoryOutputText:        11,
			CategoryCachedReadTokens:  77_777,
			CategoryCachedWriteTokens: 5,
			CategoryReasoningTokens:   123,
			CategoryOutputImage:       9,
		},
	}
	price := tokensPrice(1.37, 9.99, 0.85)
	price.CacheRateMultiplier = 1.25
	price.Ratios = CategoryRatios{CategoryCachedReadTokens: 1.3, CategoryOutputImage: 2.5}
	extras := []ExtraBillingItem{{Key: "web_search", UnitPrice: 0.035, CallCount: 2}}

	first, err := ComputeCharge(event, price, extras)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := ComputeCharge(event, price, extras)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestComputeChargeNonNegative(t *testing.T) {
	events := []*UsageEvent{
		{},
		{Counts: map[TokenCategory]int64{CategoryInputText: 1}},
		{InputTokens: 5, Counts: map[TokenCategory]int64{CategoryCachedWriteTokens: 3}},
	}
	for _, event := range events {
		result, err := ComputeCharge(event, tokensPrice(0, 0, 0.3), nil)
		require.NoError(t, err)
		assert.False(t, result.TotalQuota.IsNegative())
		assert.False(t, result.OriginalQuota.IsNegative())
	}
}

func TestDivByZeroGuard(t *testing.T) {
	_, err := Div(decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, ErrDivideByZero)
}
