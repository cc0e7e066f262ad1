package model

import (
	"context"
	"errors"
	"strings"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common/helper"
	"github.com/ezlinkai/console/common/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResourcePackage 预付费资源包。余额单位是配额，计费时绕过钱包
// 直接从包内扣减。
type ResourcePackage struct {
	Id          int64           `json:"id"`
	UserId      int             `json:"user_id" gorm:"index"`
	ServiceType string          `json:"service_type" gorm:"index;default:''"`
	RemainQuota decimal.Decimal `json:"remain_quota" gorm:"type:decimal(30,15);default:0"`
	TotalQuota  decimal.Decimal `json:"total_quota" gorm:"type:decimal(30,15);default:0"`
	Status      int             `json:"status" gorm:"default:1"`
	ExpiredAt   int64           `json:"expired_at" gorm:"bigint;default:0"`
	UpdatedAt   int64           `json:"updated_at" gorm:"bigint"`
	CreatedAt   int64           `json:"created_at" gorm:"bigint"`
}

// PackageDeduction 扣减流水，request_id 唯一索引保证同一请求
// 至多扣一次。
type PackageDeduction struct {
	Id        int64           `json:"id"`
	PackageId int64           `json:"package_id" gorm:"index"`
	RequestId string          `json:"request_id" gorm:"uniqueIndex;size:64"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(30,15)"`
	CreatedAt int64           `json:"created_at" gorm:"bigint"`
}

const (
	PackageStatusEnabled  = 1
	PackageStatusDisabled = 2
	PackageStatusExpired  = 3
)

func GetResourcePackageById(id int64) (*ResourcePackage, error) {
	if id <= 0 {
		return nil, errors.New("id is invalid")
	}
	var pkg ResourcePackage
	err := DB.First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func GetUserResourcePackages(userId int) (packages []*ResourcePackage, err error) {
	err = DB.Where("user_id = ? AND status = ?", userId, PackageStatusEnabled).
		Order("expired_at asc").Find(&packages).Error
	return packages, err
}

// CreditResourcePackage 给用户的资源包充值，没有可用包时建新包。
// 在传入的事务内执行，充值订单回调依赖这一点保证原子性。
func CreditResourcePackage(tx *gorm.DB, userId int, serviceType string, amount decimal.Decimal) error {
	var pkg ResourcePackage
	err := tx.Where("user_id = ? AND service_type = ? AND status = ?",
		userId, serviceType, PackageStatusEnabled).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pkg = ResourcePackage{
			UserId:      userId,
			ServiceType: serviceType,
			RemainQuota: amount,
			TotalQuota:  amount,
			Status:      PackageStatusEnabled,
			CreatedAt:   helper.GetTimestamp(),
			UpdatedAt:   helper.GetTimestamp(),
		}
		return tx.Create(&pkg).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&ResourcePackage{}).Where("id = ?", pkg.Id).Updates(map[string]interface{}{
		"remain_quota": gorm.Expr("remain_quota + ?", amount),
		"total_quota":  gorm.Expr("total_quota + ?", amount),
		"updated_at":   helper.GetTimestamp(),
	}).Error
}

// PackageStore 把资源包表适配成 billing 的台账接口
type PackageStore struct{}

func (PackageStore) Balance(ctx context.Context, packageId int64) (decimal.Decimal, error) {
	pkg, err := CacheGetPackage(packageId)
	if err != nil {
		return decimal.Zero, err
	}
	if pkg.Status != PackageStatusEnabled {
		return decimal.Zero, nil
	}
	return pkg.RemainQuota, nil
}

// Deduct 条件更新保证并发下不会扣成负数，扣减流水保证同一
// request id 至多生效一次。
func (PackageStore) Deduct(ctx context.Context, packageId int64, eventId string, amount decimal.Decimal) error {
	err := DB.Transaction(func(tx *gorm.DB) error {
		deduction := PackageDeduction{
			PackageId: packageId,
			RequestId: eventId,
			Amount:    amount,
			CreatedAt: helper.GetTimestamp(),
		}
		if err := tx.Create(&deduction).Error; err != nil {
			if isDuplicateKeyError(err) {
				logger.Warn(ctx, "duplicate package deduction ignored: "+eventId)
				return nil
			}
			return err
		}
		result := tx.Model(&ResourcePackage{}).
			Where("id = ? AND status = ? AND remain_quota >= ?", packageId, PackageStatusEnabled, amount).
			Updates(map[string]interface{}{
				"remain_quota": gorm.Expr("remain_quota - ?", amount),
				"updated_at":   helper.GetTimestamp(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return billing.ErrInsufficientPackageBalance
		}
		return nil
	})
	if err == nil {
		invalidatePackageCache(packageId)
	}
	return err
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
