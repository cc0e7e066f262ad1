package model

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/common/helper"
	"github.com/ezlinkai/console/common/logger"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentlink"
	"github.com/stripe/stripe-go/v78/webhook"
	"gorm.io/gorm"
)

type ChargeOrder struct {
	Id         int     `json:"id"`
	UserId     int     `json:"user_id" gorm:"index"`
	AppOrderId string  `json:"app_order_id" gorm:"uniqueIndex;size:64"`
	OrderNo    string  `json:"order_no"`
	ChargeId   int     `json:"charge_id"`
	Status     int     `json:"status" gorm:"index"`
	Currency   string  `json:"currency"`
	Extension  string  `json:"extension"`
	Amount     float64 `json:"amount"`
	Price      float64 `json:"price"`
	RealAmount float64 `json:"real_amount"`
	Ip         string  `json:"ip"`
	UpdatedAt  int64   `json:"updated_at" gorm:"bigint"`
	CreatedAt  int64   `json:"created_at" gorm:"bigint"`
}

var StatusMap = map[string]int{
	"create":  1,
	"pending": 2,
	"success": 3,
	"fail":    4,
	"refund":  5,
}

func GetUserChargeOrdersAndCount(userId int, status int, page int, pageSize int) (chargeOrders []*ChargeOrder, total int64, err error) {
	tx := DB.Model(&ChargeOrder{})
	if userId > 0 {
		tx = tx.Where("user_id = ?", userId)
	}
	if status > 0 {
		tx = tx.Where("status = ?", status)
	}
	err = tx.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	err = tx.Order("id desc").Limit(pageSize).Offset(offset).Find(&chargeOrders).Error
	if err != nil {
		return nil, total, err
	}
	return chargeOrders, total, nil
}

// CreateStripeOrder 建单并生成 Stripe 支付链接。落库的 Price 是
// 核价后的应付金额，回调时据此入账。
func CreateStripeOrder(userId, chargeId int, gateway billing.PaymentGateway, ip string) (string, string, error) {
	chargeConfig, err := GetChargeConfigById(chargeId)
	if err != nil {
		return "", "", err
	}
	configs, err := GetChargeConfigs()
	if err != nil {
		return "", "", err
	}

	quote, err := quoteChargeConfig(chargeConfig, configs, gateway)
	if err != nil {
		return "", "", err
	}

	appOrderId := getAppOrderId(userId)
	chargeOrder := ChargeOrder{
		UserId:     userId,
		ChargeId:   chargeConfig.Id,
		Currency:   quote.Currency,
		AppOrderId: appOrderId,
		Status:     StatusMap["create"],
		Amount:     chargeConfig.Amount,
		Price:      quote.TotalPayable.InexactFloat64(),
		Ip:         ip,
		CreatedAt:  helper.GetTimestamp(),
		UpdatedAt:  helper.GetTimestamp(),
	}

	err = DB.Model(&ChargeOrder{}).Create(&chargeOrder).Error
	if err != nil {
		return "", "", err
	}

	stripe.Key = config.StripePrivateKey
	params := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(chargeConfig.Price),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"userId":     fmt.Sprintf("%d", userId),
			"appOrderId": appOrderId,
		},
	}
	result, err := paymentlink.New(params)
	if err != nil {
		return "", "", err
	}
	return result.URL, appOrderId, nil
}

// quoteChargeConfig 核价一个充值档位。折算用网关结算货币的汇率，
// 档位上的 Currency 只是展示口径。
func quoteChargeConfig(chargeConfig *ChargeConfig, configs []*ChargeConfig, gateway billing.PaymentGateway) (*billing.TopUpQuote, error) {
	rate := common.GetExchangeRate(gateway.Currency)
	return billing.ComputeTopUp(chargeConfig.Amount, gateway,
		DiscountTableFromConfigs(configs), config.BaseCurrency, rate)
}

func getAppOrderId(userId int) string {
	randomInt := rand.Int()
	return helper.GetTimeString() + "-" + fmt.Sprintf("%d", randomInt) + "-" + fmt.Sprintf("%d", userId)
}

// HandleStripeCallback 校验 webhook 签名并完结订单。入账额度是
// 档位 Amount 乘 QuotaPerUnit，订单状态流转和资源包充值在同一
// 事务内完成，重复回调靠状态检查幂等。
func HandleStripeCallback(w http.ResponseWriter, req *http.Request) error {
	const MaxBodyBytes = int64(65536)
	req.Body = http.MaxBytesReader(w, req.Body, MaxBodyBytes)
	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	signatureHeader := req.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, signatureHeader, config.StripeEndpointSecret)
	if err != nil {
		return err
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var paymentIntent stripe.PaymentIntent
		err := json.Unmarshal(event.Data.Raw, &paymentIntent)
		if err != nil {
			logger.SysLog(fmt.Sprintf("Error parsing webhook JSON: %v", err))
			return err
		}
		appOrderId := paymentIntent.Metadata["appOrderId"]
		if appOrderId == "" {
			logger.SysLog("payment intent without appOrderId, ignored")
			return nil
		}
		return completeOrder(appOrderId, paymentIntent.ID, float64(paymentIntent.AmountReceived)/100)
	case "payment_intent.payment_failed":
		var paymentIntent stripe.PaymentIntent
		err := json.Unmarshal(event.Data.Raw, &paymentIntent)
		if err != nil {
			return err
		}
		appOrderId := paymentIntent.Metadata["appOrderId"]
		if appOrderId != "" {
			return failOrder(appOrderId)
		}
	default:
		logger.SysLog(fmt.Sprintf("Unhandled event type: %s", event.Type))
	}
	return nil
}

func completeOrder(appOrderId string, orderNo string, realAmount float64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var order ChargeOrder
		err := tx.Where("app_order_id = ?", appOrderId).First(&order).Error
		if err != nil {
			return err
		}
		if order.Status == StatusMap["success"] {
			// 重复回调
			return nil
		}
		err = tx.Model(&ChargeOrder{}).Where("id = ?", order.Id).Updates(map[string]interface{}{
			"status":      StatusMap["success"],
			"order_no":    orderNo,
			"real_amount": realAmount,
			"updated_at":  helper.GetTimestamp(),
		}).Error
		if err != nil {
			return err
		}
		quota := decimal.NewFromFloat(order.Amount).Mul(decimal.NewFromFloat(config.QuotaPerUnit))
		err = CreditResourcePackage(tx, order.UserId, "topup", quota)
		if err != nil {
			return err
		}
		RecordLog(order.UserId, LogTypeTopup,
			fmt.Sprintf("充值成功，订单 %s，到账 %s", appOrderId, common.LogQuotaDecimal(quota)))
		return nil
	})
}

func failOrder(appOrderId string) error {
	return DB.Model(&ChargeOrder{}).
		Where("app_order_id = ? AND status = ?", appOrderId, StatusMap["create"]).
		Updates(map[string]interface{}{
			"status":     StatusMap["fail"],
			"updated_at": helper.GetTimestamp(),
		}).Error
}
