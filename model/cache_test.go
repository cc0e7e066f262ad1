package model

import (
	"testing"

	"github.com/ezlinkai/console/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCacheRatio(t *testing.T) {
	common.RedisEnabled = false

	// 已知分组回源内存表
	ratio, ok := GroupCache{}.GroupRatio("default")
	require.True(t, ok)
	assert.Equal(t, 1.0, ratio)

	// 未知分组不给默认值，交给上游的缺省规则
	_, ok = GroupCache{}.GroupRatio("no-such-group")
	assert.False(t, ok)
}
