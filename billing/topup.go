package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PaymentGateway describes one payment channel's fee schedule. A positive
// FixedFee wins over PercentFee; Currency is the settlement currency.
type PaymentGateway struct {
	Name       string  `json:"name"`
	FixedFee   float64 `json:"fixed_fee"`
	PercentFee float64 `json:"percent_fee"`
	Currency   string  `json:"currency"`
}

// DiscountTier grants a multiplier to top-ups of at least MinAmount.
type DiscountTier struct {
	MinAmount  float64 `json:"min_amount"`
	Multiplier float64 `json:"multiplier"`
}

// DiscountTable is a set of tiers; the highest qualifying tier applies
// and an empty table means multiplier 1.
type DiscountTable []DiscountTier

// DiscountFor returns the multiplier for a given amount.
func (t DiscountTable) DiscountFor(amount decimal.Decimal) decimal.Decimal {
	tiers := make([]DiscountTier, len(t))
	copy(tiers, t)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinAmount < tiers[j].MinAmount })

	multiplier := decimalOne
	for _, tier := range tiers {
		m, err := ratioFromFloat(tier.Multiplier)
		if err != nil {
			continue
		}
		min, err := ratioFromFloat(tier.MinAmount)
		if err != nil {
			continue
		}
		if amount.GreaterThanOrEqual(min) {
			multiplier = m
		}
	}
	return multiplier
}

// TopUpQuote is the priced result of a recharge request.
type TopUpQuote struct {
	Amount           decimal.Decimal `json:"amount"`
	Discount         decimal.Decimal `json:"discount"`
	DiscountedAmount decimal.Decimal `json:"discounted_amount"`
	Fee              decimal.Decimal `json:"fee"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
	Currency         string          `json:"currency"`
}

// ComputeTopUp prices a recharge: tier discount first, then the gateway
// fee (fixed if configured, else the percentage of the discounted amount
// rounded half-up to cents), then conversion into the gateway's
// settlement currency when it differs from the ledger's base currency.
// Rate is quote-per-base and must be positive when a conversion applies.
//
// For a fixed discount tier the total payable is monotonically
// non-decreasing in the amount: fees are never negative and nothing here
// ever subtracts.
func ComputeTopUp(amount float64, gateway PaymentGateway, tiers DiscountTable, baseCurrency string, rate float64) (*TopUpQuote, error) {
	amountDec, err := ratioFromFloat(amount)
	if err != nil {
		return nil, err
	}
	fixedFee, err := ratioFromFloat(gateway.FixedFee)
	if err != nil {
		return nil, err
	}
	percentFee, err := ratioFromFloat(gateway.PercentFee)
	if err != nil {
		return nil, err
	}

	quote := &TopUpQuote{
		Amount:   amountDec,
		Currency: gateway.Currency,
	}
	if quote.Currency == "" {
		quote.Currency = baseCurrency
	}

	quote.Discount = tiers.DiscountFor(amountDec)
	quote.DiscountedAmount = amountDec.Mul(quote.Discount)

	if fixedFee.GreaterThan(decimal.Zero) {
		quote.Fee = fixedFee
	} else {
		quote.Fee = RoundPlaces(percentFee.Mul(quote.DiscountedAmount), 2)
	}

	quote.TotalPayable = quote.DiscountedAmount.Add(quote.Fee)

	if quote.Currency != baseCurrency {
		rateDec, rerr := ratioFromFloat(rate)
		if rerr != nil {
			return nil, rerr
		}
		if rateDec.IsZero() {
			return nil, ErrDivideByZero
		}
		quote.TotalPayable = quote.TotalPayable.Mul(rateDec)
	}

	return quote, nil
}
