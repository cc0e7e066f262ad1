package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTokensExtraCeiling(t *testing.T) {
	// 1000 tokens × 1.1 倍率 → 额外 100，禁止浮点噪声
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{CategoryInputText: 1000},
	}
	cls, err := ClassifyTokens(event, CategoryRatios{CategoryInputText: 1.1})
	require.NoError(t, err)
	require.Len(t, cls.Categories, 1)
	assert.Equal(t, int64(100), cls.Categories[0].Extra)
	assert.Equal(t, int64(1100), cls.Categories[0].Billable)
	assert.Equal(t, int64(1100), cls.TotalInputTokens)
}

func TestClassifyTokensSides(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:       100,
			CategoryOutputText:      50, // 历史约定：按输入侧计费
			CategoryReasoningTokens: 30,
			CategoryOutputAudio:     20,
		},
	}
	cls, err := ClassifyTokens(event, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(150), cls.TotalInputTokens)
	assert.Equal(t, int64(50), cls.TotalOutputTokens)
}

func TestClassifyTokensOverrideSuppressesCache(t *testing.T) {
	// 场景：聚合 input_tokens=1200 时必须完全忽略 cached_write/cached_read
	event := &UsageEvent{
		InputTokens: 1200,
		Counts: map[TokenCategory]int64{
			CategoryCachedWriteTokens: 300,
			CategoryCachedReadTokens:  80,
		},
	}
	cls, err := ClassifyTokens(event, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), cls.TotalInputTokens)
	for _, ct := range cls.Categories {
		assert.NotEqual(t, CategoryCachedWriteTokens, ct.Key)
		assert.NotEqual(t, CategoryCachedReadTokens, ct.Key)
	}
}

func TestClassifyTokensOverrideKeepsPremiumExtras(t *testing.T) {
	// 覆盖值作为聚合输入量，粒度类目只叠加超额部分
	event := &UsageEvent{
		InputTokens: 1000,
		Counts: map[TokenCategory]int64{
			CategoryInputAudio: 200,
		},
	}
	cls, err := ClassifyTokens(event, CategoryRatios{CategoryInputAudio: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), cls.TotalInputTokens)
}

func TestClassifyTokensUnknownCategoryDropped(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{
			CategoryInputText:        100,
			TokenCategory("holo_3d"): 9999,
		},
	}
	cls, err := ClassifyTokens(event, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), cls.TotalInputTokens)
	assert.Equal(t, int64(0), cls.TotalOutputTokens)
}

func TestClassifyTokensInvalidRatio(t *testing.T) {
	event := &UsageEvent{
		Counts: map[TokenCategory]int64{CategoryInputText: 100},
	}
	_, err := ClassifyTokens(event, CategoryRatios{CategoryInputText: -0.5})
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestSideOfUnknown(t *testing.T) {
	_, ok := SideOf(TokenCategory("input_tokens_v2"))
	assert.False(t, ok)
}
