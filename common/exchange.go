package common

import (
	"encoding/json"
	"sync"

	"github.com/ezlinkai/console/common/logger"
)

// ExchangeRates 以基准货币（config.BaseCurrency）计价的汇率表，
// 值是 1 基准货币折合的目标货币数量。由管理端通过选项系统维护，
// 不在线拉取。
var ExchangeRates = map[string]float64{
	"USD": 1,
	"CNY": 7.2,
	"EUR": 0.92,
}

var exchangeMutex sync.RWMutex

func ExchangeRates2JSONString() string {
	exchangeMutex.RLock()
	defer exchangeMutex.RUnlock()
	jsonBytes, err := json.Marshal(ExchangeRates)
	if err != nil {
		logger.SysError("error marshalling exchange rates: " + err.Error())
	}
	return string(jsonBytes)
}

func UpdateExchangeRatesByJSONString(jsonStr string) error {
	exchangeMutex.Lock()
	defer exchangeMutex.Unlock()
	ExchangeRates = make(map[string]float64)
	return json.Unmarshal([]byte(jsonStr), &ExchangeRates)
}

// GetExchangeRate 返回某货币的汇率，未配置时返回 0，由调用方报错
func GetExchangeRate(currency string) float64 {
	exchangeMutex.RLock()
	defer exchangeMutex.RUnlock()
	return ExchangeRates[currency]
}
