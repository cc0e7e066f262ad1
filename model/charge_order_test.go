package model

import (
	"testing"

	"github.com/ezlinkai/console/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteChargeConfig(t *testing.T) {
	cfg := &ChargeConfig{Id: 1, Amount: 100, Currency: "USD"}

	t.Run("网关结算货币与基准一致时不折算", func(t *testing.T) {
		gateway := billing.PaymentGateway{Name: "stripe", Currency: "USD"}
		quote, err := quoteChargeConfig(cfg, nil, gateway)
		require.NoError(t, err)
		assert.True(t, quote.TotalPayable.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "USD", quote.Currency)
	})

	t.Run("档位货币与网关不一致时按网关货币汇率折算", func(t *testing.T) {
		// 档位标 USD，Stripe 走 CNY 结算，应付按 CNY 汇率折算
		gateway := billing.PaymentGateway{Name: "stripe", Currency: "CNY"}
		quote, err := quoteChargeConfig(cfg, nil, gateway)
		require.NoError(t, err)
		assert.True(t, quote.TotalPayable.Equal(decimal.NewFromInt(720)),
			"got %s", quote.TotalPayable.String())
		assert.Equal(t, "CNY", quote.Currency)
	})

	t.Run("折扣档在折算前生效", func(t *testing.T) {
		configs := []*ChargeConfig{{Id: 2, Amount: 100, Discount: 0.9}}
		gateway := billing.PaymentGateway{Name: "stripe", Currency: "CNY"}
		quote, err := quoteChargeConfig(cfg, configs, gateway)
		require.NoError(t, err)
		// 100 * 0.9 * 7.2
		assert.True(t, quote.TotalPayable.Equal(decimal.NewFromInt(648)),
			"got %s", quote.TotalPayable.String())
	})
}
