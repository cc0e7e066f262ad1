package common

import (
	"fmt"

	"github.com/ezlinkai/console/common/config"
	"github.com/shopspring/decimal"
)

// LogQuotaDecimal 展示精确配额，核算接口返回 decimal 金额时使用
func LogQuotaDecimal(quota decimal.Decimal) string {
	if config.DisplayInCurrencyEnabled {
		amount := quota.Div(decimal.NewFromFloat(config.QuotaPerUnit))
		return fmt.Sprintf("＄%s quote", amount.Round(6).String())
	}
	return fmt.Sprintf("%s quote", quota.Round(0).String())
}
