package common

import (
	"testing"

	"github.com/ezlinkai/console/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioScheduleLookup(t *testing.T) {
	entry, ok := RatioSchedule{}.Lookup("gpt-4o")
	require.True(t, ok)
	assert.Equal(t, 2.5, entry.ModelRatio)
	assert.Equal(t, 4.0, entry.OutputRatio)
	assert.Equal(t, 0.5, entry.CacheInputRatio)
	assert.Empty(t, entry.BillingType)

	// 按次模型走 times
	entry, ok = RatioSchedule{}.Lookup("mj-imagine")
	require.True(t, ok)
	assert.Equal(t, string(billing.BillingModeTimes), entry.BillingType)
	assert.Equal(t, 0.1, entry.FlatRate)

	_, ok = RatioSchedule{}.Lookup("no-such-model")
	assert.False(t, ok)
}

func TestRatioJSONRoundTrip(t *testing.T) {
	original := ModelRatio2JSONString()
	err := UpdateModelRatioByJSONString(`{"test-model": 3.5}`)
	require.NoError(t, err)
	assert.Equal(t, 3.5, GetModelRatio("test-model"))

	err = UpdateModelRatioByJSONString(original)
	require.NoError(t, err)
	assert.Equal(t, 2.5, GetModelRatio("gpt-4o"))
}

func TestGroupScheduleUnknownGroup(t *testing.T) {
	_, ok := GroupSchedule{}.GroupRatio("no-such-group")
	assert.False(t, ok)

	ratio, ok := GroupSchedule{}.GroupRatio("default")
	require.True(t, ok)
	assert.Equal(t, 1.0, ratio)
}
