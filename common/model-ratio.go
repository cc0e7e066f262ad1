package common

import (
	"encoding/json"
	"sync"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common/logger"
)

// 模型倍率表。单位是 rate-unit / 百万 token，1 rate-unit 对应
// QuotaPerUnit 配额。管理端通过选项系统整体替换这些表。
var ModelRatio = map[string]float64{
	"gpt-4o":        2.5,
	"gpt-4o-mini":   0.15,
	"o1":            15,
	"o1-mini":       1.1,
	"claude-sonnet": 3,
	"claude-haiku":  0.8,
	"deepseek-chat": 0.14,
}

// CompletionRatio 输出倍率，相对 ModelRatio 的乘数
var CompletionRatio = map[string]float64{
	"gpt-4o":        4,
	"gpt-4o-mini":   4,
	"o1":            4,
	"o1-mini":       4,
	"claude-sonnet": 5,
	"claude-haiku":  5,
	"deepseek-chat": 2,
}

// CacheRatio 缓存读取倍率，命中缓存的输入 token 按此乘数计费
var CacheRatio = map[string]float64{
	"gpt-4o":        0.5,
	"gpt-4o-mini":   0.5,
	"claude-sonnet": 0.1,
	"claude-haiku":  0.1,
	"deepseek-chat": 0.25,
}

// ModelPrice 按次计费模型的单次价格，存在即表示该模型走 times 模式
var ModelPrice = map[string]float64{
	"mj-imagine": 0.1,
	"mj-upscale": 0.05,
	"suno-song":  0.5,
}

// ModelCategoryRatios 各 token 类别的溢价倍率，按模型覆盖默认值 1
var ModelCategoryRatios = map[string]map[string]float64{}

var ratioMutex sync.RWMutex

func ModelRatio2JSONString() string {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	jsonBytes, err := json.Marshal(ModelRatio)
	if err != nil {
		logger.SysError("error marshalling model ratio: " + err.Error())
	}
	return string(jsonBytes)
}

func UpdateModelRatioByJSONString(jsonStr string) error {
	ratioMutex.Lock()
	defer ratioMutex.Unlock()
	ModelRatio = make(map[string]float64)
	return json.Unmarshal([]byte(jsonStr), &ModelRatio)
}

func CompletionRatio2JSONString() string {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	jsonBytes, err := json.Marshal(CompletionRatio)
	if err != nil {
		logger.SysError("error marshalling completion ratio: " + err.Error())
	}
	return string(jsonBytes)
}

func UpdateCompletionRatioByJSONString(jsonStr string) error {
	ratioMutex.Lock()
	defer ratioMutex.Unlock()
	CompletionRatio = make(map[string]float64)
	return json.Unmarshal([]byte(jsonStr), &CompletionRatio)
}

func CacheRatio2JSONString() string {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	jsonBytes, err := json.Marshal(CacheRatio)
	if err != nil {
		logger.SysError("error marshalling cache ratio: " + err.Error())
	}
	return string(jsonBytes)
}

func UpdateCacheRatioByJSONString(jsonStr string) error {
	ratioMutex.Lock()
	defer ratioMutex.Unlock()
	CacheRatio = make(map[string]float64)
	return json.Unmarshal([]byte(jsonStr), &CacheRatio)
}

func ModelPrice2JSONString() string {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	jsonBytes, err := json.Marshal(ModelPrice)
	if err != nil {
		logger.SysError("error marshalling model price: " + err.Error())
	}
	return string(jsonBytes)
}

func UpdateModelPriceByJSONString(jsonStr string) error {
	ratioMutex.Lock()
	defer ratioMutex.Unlock()
	ModelPrice = make(map[string]float64)
	return json.Unmarshal([]byte(jsonStr), &ModelPrice)
}

func GetModelRatio(name string) float64 {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	ratio, ok := ModelRatio[name]
	if !ok {
		logger.SysError("model ratio not found: " + name)
		return 1
	}
	return ratio
}

// RatioSchedule 把内存倍率表适配成 billing 的价格表来源
type RatioSchedule struct{}

func (RatioSchedule) Lookup(modelName string) (billing.ScheduleEntry, bool) {
	ratioMutex.RLock()
	defer ratioMutex.RUnlock()
	entry := billing.ScheduleEntry{InputRatio: 1, OutputRatio: 1}
	found := false
	if ratio, ok := ModelRatio[modelName]; ok {
		entry.ModelRatio = ratio
		found = true
	}
	if ratio, ok := CompletionRatio[modelName]; ok {
		entry.OutputRatio = ratio
	}
	if ratio, ok := CacheRatio[modelName]; ok {
		entry.CacheInputRatio = ratio
	}
	if price, ok := ModelPrice[modelName]; ok {
		entry.FlatRate = price
		entry.BillingType = string(billing.BillingModeTimes)
		found = true
	}
	if ratios, ok := ModelCategoryRatios[modelName]; ok {
		entry.CategoryRatios = make(map[billing.TokenCategory]float64, len(ratios))
		for k, v := range ratios {
			entry.CategoryRatios[billing.TokenCategory(k)] = v
		}
	}
	return entry, found
}

// GroupSchedule 把分组倍率表适配成 billing 的折扣来源
type GroupSchedule struct{}

func (GroupSchedule) GroupRatio(group string) (float64, bool) {
	ratio, ok := GroupRatio[group]
	return ratio, ok
}
