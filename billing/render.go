package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RenderRatioSummary formats the ratio line recorded alongside a consume
// log, e.g. 模型倍率 2.00，分组倍率 0.50. Display only.
func RenderRatioSummary(price PriceData) string {
	if price.Mode == BillingModeTimes {
		return fmt.Sprintf("模型价格 %.2f，分组倍率 %.2f", price.FlatRate, price.GroupDiscount)
	}
	return fmt.Sprintf("输入倍率 %.2f，输出倍率 %.2f，缓存倍率 %.2f，分组倍率 %.2f",
		price.InputRate, price.OutputRate, price.CacheRateMultiplier, price.GroupDiscount)
}

// RenderBreakdown formats the calculation steps of a charge for the
// console's detail view: original vs discounted amount, per-category
// extra tokens, flat add-ons. Non-authoritative; the numbers come from
// the ChargeResult and are only ever trimmed here, never recomputed.
func RenderBreakdown(result *ChargeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "总额 %s（原价 %s）", FormatTrimmed(result.TotalQuota, 6), FormatTrimmed(result.OriginalQuota, 6))
	fmt.Fprintf(&b, "，输入 %d tokens，输出 %d tokens", result.TotalInputTokens, result.TotalOutputTokens)
	for _, c := range result.Breakdown {
		if c.ExtraTokens > 0 {
			fmt.Fprintf(&b, "；%s %d×%s 额外 %d", c.Key, c.Raw, FormatTrimmed(decimalFromRatio(c.Ratio), 4), c.ExtraTokens)
		}
	}
	for _, e := range result.ExtraContributions {
		fmt.Fprintf(&b, "；%s %d×%s=%s", e.Key, e.CallCount, FormatTrimmed(decimalFromRatio(e.UnitPrice), 6), FormatTrimmed(e.Amount, 6))
	}
	return b.String()
}

func decimalFromRatio(v float64) decimal.Decimal {
	d, err := ratioFromFloat(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
