package model

import (
	"errors"

	"github.com/ezlinkai/console/billing"
)

// ChargeConfig 充值档位。Amount 是入账额度，Price 是 Stripe 价格
// 对象 id，Discount 是满额折扣档的乘数。
type ChargeConfig struct {
	Id        int     `json:"id"`
	Type      string  `json:"type"`
	Order     int     `json:"order"`
	Amount    float64 `json:"amount"`
	Price     string  `json:"price"`
	Currency  string  `json:"currency"`
	Discount  float64 `json:"discount" gorm:"default:1"`
	Status    int     `json:"status" gorm:"default:1"`
	UpdatedAt int64   `json:"updated_at" gorm:"bigint"`
	CreatedAt int64   `json:"created_at" gorm:"bigint"`
}

func GetChargeConfigs() (chargeConfigs []*ChargeConfig, err error) {
	// 获取所有启用的充值项
	err = DB.Model(&ChargeConfig{}).Where("status = ?", 1).Order("`order` asc").Find(&chargeConfigs).Error
	if err != nil {
		return nil, err
	}
	return chargeConfigs, nil
}

func GetChargeConfigById(id int) (chargeConfig *ChargeConfig, err error) {
	if id <= 0 {
		return nil, errors.New("id is invalid")
	}

	err = DB.Model(&ChargeConfig{}).First(&chargeConfig, id).Error
	if err != nil {
		return nil, err
	}
	return chargeConfig, nil
}

// DiscountTableFromConfigs 把充值档位表折算成计价用的折扣档
func DiscountTableFromConfigs(configs []*ChargeConfig) billing.DiscountTable {
	var table billing.DiscountTable
	for _, cfg := range configs {
		if cfg.Discount <= 0 || cfg.Discount == 1 {
			continue
		}
		table = append(table, billing.DiscountTier{
			MinAmount:  cfg.Amount,
			Multiplier: cfg.Discount,
		})
	}
	return table
}
