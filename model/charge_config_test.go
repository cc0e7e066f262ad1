package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountTableFromConfigs(t *testing.T) {
	configs := []*ChargeConfig{
		{Id: 1, Amount: 10, Discount: 1},
		{Id: 2, Amount: 100, Discount: 0.95},
		{Id: 3, Amount: 500, Discount: 0.9},
		{Id: 4, Amount: 50, Discount: 0},
	}
	table := DiscountTableFromConfigs(configs)
	assert.Len(t, table, 2, "无折扣和非法档位应被剔除")

	// 最高满足档生效
	assert.True(t, table.DiscountFor(decimal.NewFromInt(600)).Equal(decimal.NewFromFloat(0.9)))
	assert.True(t, table.DiscountFor(decimal.NewFromInt(100)).Equal(decimal.NewFromFloat(0.95)))
	assert.True(t, table.DiscountFor(decimal.NewFromInt(10)).Equal(decimal.NewFromInt(1)))
}
