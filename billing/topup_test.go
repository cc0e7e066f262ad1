package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTopUpScenarioE(t *testing.T) {
	// 100 × 0.9 = 90，手续费 round(0.02×90, 2) = 1.80，应付 91.80
	gateway := PaymentGateway{Name: "stripe", PercentFee: 0.02, Currency: "USD"}
	tiers := DiscountTable{{MinAmount: 100, Multiplier: 0.9}}

	quote, err := ComputeTopUp(100, gateway, tiers, "USD", 1)
	require.NoError(t, err)
	assert.True(t, quote.DiscountedAmount.Equal(decimal.RequireFromString("90")), "discounted=%s", quote.DiscountedAmount)
	assert.True(t, quote.Fee.Equal(decimal.RequireFromString("1.8")), "fee=%s", quote.Fee)
	assert.True(t, quote.TotalPayable.Equal(decimal.RequireFromString("91.8")), "payable=%s", quote.TotalPayable)
}

func TestComputeTopUpFixedFeeWins(t *testing.T) {
	gateway := PaymentGateway{Name: "crypto", FixedFee: 0.5, PercentFee: 0.02, Currency: "USD"}
	quote, err := ComputeTopUp(10, gateway, nil, "USD", 1)
	require.NoError(t, err)
	assert.True(t, quote.Fee.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, quote.TotalPayable.Equal(decimal.RequireFromString("10.5")))
}

func TestComputeTopUpCurrencyConversion(t *testing.T) {
	gateway := PaymentGateway{Name: "alipay", PercentFee: 0, Currency: "CNY"}
	quote, err := ComputeTopUp(10, gateway, nil, "USD", 7.2)
	require.NoError(t, err)
	assert.True(t, quote.TotalPayable.Equal(decimal.RequireFromString("72")), "payable=%s", quote.TotalPayable)
}

func TestComputeTopUpZeroRateWithConversion(t *testing.T) {
	gateway := PaymentGateway{Name: "alipay", Currency: "CNY"}
	_, err := ComputeTopUp(10, gateway, nil, "USD", 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestComputeTopUpMonotone(t *testing.T) {
	// 同一折扣档内应付金额随充值额单调不减
	gateway := PaymentGateway{Name: "stripe", PercentFee: 0.029, Currency: "USD"}
	tiers := DiscountTable{{MinAmount: 0, Multiplier: 0.95}}

	prev := decimal.Zero
	for amount := 1.0; amount <= 500; amount += 7 {
		quote, err := ComputeTopUp(amount, gateway, tiers, "USD", 1)
		require.NoError(t, err)
		assert.False(t, quote.TotalPayable.LessThan(prev), "amount=%v payable=%s prev=%s", amount, quote.TotalPayable, prev)
		prev = quote.TotalPayable
	}
}

func TestComputeTopUpNegativeAmount(t *testing.T) {
	_, err := ComputeTopUp(-5, PaymentGateway{Currency: "USD"}, nil, "USD", 1)
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestDiscountForHighestQualifyingTier(t *testing.T) {
	tiers := DiscountTable{
		{MinAmount: 500, Multiplier: 0.8},
		{MinAmount: 50, Multiplier: 0.95},
		{MinAmount: 100, Multiplier: 0.9},
	}
	assert.True(t, tiers.DiscountFor(decimal.NewFromInt(60)).Equal(decimal.RequireFromString("0.95")))
	assert.True(t, tiers.DiscountFor(decimal.NewFromInt(100)).Equal(decimal.RequireFromString("0.9")))
	assert.True(t, tiers.DiscountFor(decimal.NewFromInt(1000)).Equal(decimal.RequireFromString("0.8")))
	assert.True(t, tiers.DiscountFor(decimal.NewFromInt(1)).Equal(decimalOne))
}
