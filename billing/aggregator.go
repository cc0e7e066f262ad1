package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// CategoryContribution is one line of the charge breakdown: the tokens a
// category billed for and the pre-discount quota they produced.
type CategoryContribution struct {
	Key         TokenCategory   `json:"key"`
	Raw         int64           `json:"raw"`
	Ratio       float64         `json:"ratio"`
	ExtraTokens int64           `json:"extra_tokens"`
	Tokens      int64           `json:"tokens"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExtraContribution is one flat add-on charge after pricing.
type ExtraContribution struct {
	Key       string          `json:"key"`
	UnitPrice float64         `json:"unit_price"`
	CallCount int64           `json:"call_count"`
	Amount    decimal.Decimal `json:"amount"`
}

// ChargeResult is the only externally visible output of a charge
// computation. OriginalQuota is the charge that would apply at
// discount 1. The whole struct is a pure function of its inputs:
// replaying the same event yields a byte-identical result, which is what
// lets a display surface independently recompute a charge the billing
// pipeline already committed.
type ChargeResult struct {
	TotalQuota         decimal.Decimal        `json:"total_quota"`
	OriginalQuota      decimal.Decimal        `json:"original_quota"`
	TotalInputTokens   int64                  `json:"total_input_tokens"`
	TotalOutputTokens  int64                  `json:"total_output_tokens"`
	Breakdown          []CategoryContribution `json:"breakdown"`
	ExtraContributions []ExtraContribution    `json:"extra_contributions"`
}

// ComputeCharge derives the quota to charge for one usage event.
//
// Tokens mode prices the classified input and output volumes at the
// per-million rates, with the cache-attributable portion at the cache
// rate, then applies the group discount. Flat extras skip the token ratio
// machinery but are discounted the same way. Times mode charges the flat
// rate regardless of token volume; token totals are still reported for
// display.
//
// The pre-discount OriginalQuota prefers a server-supplied
// "original_quota" metadata value; otherwise it is recomputed at
// discount 1. A discount of exactly 0 means the discount is unknown, so
// recovery is impossible and the charge is reported as-is rather than
// divided.
func ComputeCharge(event *UsageEvent, price PriceData, extras []ExtraBillingItem) (*ChargeResult, error) {
	discount, err := ratioFromFloat(price.GroupDiscount)
	if err != nil {
		return nil, err
	}

	result := &ChargeResult{
		Breakdown:          []CategoryContribution{},
		ExtraContributions: []ExtraContribution{},
	}

	base := decimal.Zero
	switch price.Mode {
	case BillingModeTimes:
		// No token classification in per-call mode; counts are reported
		// for display only and never touch the charge.
		result.TotalInputTokens, result.TotalOutputTokens = rawTotals(event)
		flat, ferr := ratioFromFloat(price.FlatRate)
		if ferr != nil {
			return nil, ferr
		}
		base = flat
	default:
		cls, cerr := ClassifyTokens(event, price.Ratios)
		if cerr != nil {
			return nil, cerr
		}
		result.TotalInputTokens = cls.TotalInputTokens
		result.TotalOutputTokens = cls.TotalOutputTokens
		inputRate, ierr := ratioFromFloat(price.InputRate)
		if ierr != nil {
			return nil, ierr
		}
		outputRate, oerr := ratioFromFloat(price.OutputRate)
		if oerr != nil {
			return nil, oerr
		}
		cacheMul, cerr := ratioFromFloat(price.CacheRateMultiplier)
		if cerr != nil {
			return nil, cerr
		}

		for _, ct := range cls.Categories {
			rate := inputRate
			if ct.Side == SideOutput {
				rate = outputRate
			}
			if ct.Cache {
				rate = rate.Mul(cacheMul)
			}
			amount := decimal.NewFromInt(ct.Billable).Div(decimalMillion).Mul(rate)
			base = base.Add(amount)
			result.Breakdown = append(result.Breakdown, CategoryContribution{
				Key:         ct.Key,
				Raw:         ct.Raw,
				Ratio:       ct.Ratio,
				ExtraTokens: ct.Extra,
				Tokens:      ct.Billable,
				Amount:      amount,
			})
		}
	}

	extraTotal := decimal.Zero
	for _, item := range extras {
		unit, uerr := ratioFromFloat(item.UnitPrice)
		if uerr != nil {
			return nil, uerr
		}
		amount := unit.Mul(decimal.NewFromInt(item.CallCount))
		extraTotal = extraTotal.Add(amount)
		result.ExtraContributions = append(result.ExtraContributions, ExtraContribution{
			Key:       item.Key,
			UnitPrice: item.UnitPrice,
			CallCount: item.CallCount,
			Amount:    amount,
		})
	}

	result.TotalQuota = base.Mul(discount).Add(extraTotal.Mul(discount))

	if supplied, ok := metaOriginal(event.Metadata); ok {
		result.OriginalQuota = supplied
	} else if discount.IsZero() {
		// Cannot derive the pre-discount amount from a zero discount;
		// report the charge as-is.
		result.OriginalQuota = result.TotalQuota
	} else {
		result.OriginalQuota = base.Add(extraTotal)
	}

	return result, nil
}

// rawTotals sums the event's raw counts per side, honoring the aggregate
// input override. Informational only; times-mode billing never reads it.
func rawTotals(event *UsageEvent) (input int64, output int64) {
	if event.InputTokens > 0 {
		input = event.InputTokens
	}
	for _, key := range orderedCategories {
		raw := event.Count(key)
		if raw <= 0 {
			continue
		}
		side, ok := SideOf(key)
		if !ok {
			continue
		}
		if side == SideOutput {
			output += raw
		} else if event.InputTokens <= 0 {
			input += raw
		}
	}
	return input, output
}

func metaOriginal(meta map[string]any) (decimal.Decimal, bool) {
	if meta == nil {
		return decimal.Zero, false
	}
	v, ok := meta["original_quota"]
	if !ok {
		return decimal.Zero, false
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
