package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapScheduleSource map[string]ScheduleEntry

func (m mapScheduleSource) Lookup(model string) (ScheduleEntry, bool) {
	entry, ok := m[model]
	return entry, ok
}

type mapGroupSource map[string]float64

func (m mapGroupSource) GroupRatio(group string) (float64, bool) {
	ratio, ok := m[group]
	return ratio, ok
}

func TestResolvePriceDefaults(t *testing.T) {
	// 未知模型、未知分组：一切回落到 1 和 tokens 模式
	price := ResolvePrice(&UsageEvent{ModelName: "unknown-model", Group: "Lv1"}, mapScheduleSource{}, mapGroupSource{})
	assert.Equal(t, 1.0, price.InputRate)
	assert.Equal(t, 1.0, price.OutputRate)
	assert.Equal(t, 1.0, price.GroupDiscount)
	assert.Equal(t, 1.0, price.CacheRateMultiplier)
	assert.Equal(t, BillingModeTokens, price.Mode)
}

func TestResolvePriceComposesRatios(t *testing.T) {
	schedules := mapScheduleSource{
		"gpt-test": {ModelRatio: 2, InputRatio: 1, OutputRatio: 3, CacheInputRatio: 0.1, BillingType: "tokens"},
	}
	groups := mapGroupSource{"vip": 0.5}
	price := ResolvePrice(&UsageEvent{ModelName: "gpt-test", Group: "vip"}, schedules, groups)
	assert.Equal(t, 2.0, price.InputRate)
	assert.Equal(t, 6.0, price.OutputRate)
	assert.Equal(t, 0.1, price.CacheRateMultiplier)
	assert.Equal(t, 0.5, price.GroupDiscount)
}

func TestResolvePriceTimesMode(t *testing.T) {
	schedules := mapScheduleSource{
		"mj-fast": {ModelRatio: 1, FlatRate: 0.1, BillingType: "times"},
	}
	price := ResolvePrice(&UsageEvent{ModelName: "mj-fast"}, schedules, nil)
	assert.Equal(t, BillingModeTimes, price.Mode)
	assert.Equal(t, 0.1, price.FlatRate)
}

func TestResolvePriceMetadataWins(t *testing.T) {
	// 扣费时已固化的元数据优先于当前价表，保证审计可复算
	schedules := mapScheduleSource{
		"gpt-test": {ModelRatio: 99, InputRatio: 1, OutputRatio: 1},
	}
	event := &UsageEvent{
		ModelName: "gpt-test",
		Metadata: map[string]any{
			"input_rate":     2.0,
			"output_rate":    6.0,
			"group_discount": 0.5,
		},
	}
	price := ResolvePrice(event, schedules, nil)
	assert.Equal(t, 2.0, price.InputRate)
	assert.Equal(t, 6.0, price.OutputRate)
	assert.Equal(t, 0.5, price.GroupDiscount)
}

func TestResolvePriceMalformedMetadataDefaults(t *testing.T) {
	event := &UsageEvent{
		ModelName: "unknown",
		Metadata: map[string]any{
			"input_rate":   "not-a-number",
			"billing_mode": 42,
		},
	}
	price := ResolvePrice(event, nil, nil)
	assert.Equal(t, 1.0, price.InputRate)
	assert.Equal(t, BillingModeTokens, price.Mode)
}
