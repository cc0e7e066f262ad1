package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/common/logger"
	"github.com/ezlinkai/console/model"
	"github.com/gin-gonic/gin"
)

func stripeGateway() billing.PaymentGateway {
	return billing.PaymentGateway{
		Name:       "stripe",
		FixedFee:   config.StripeFixedFee,
		PercentFee: config.StripePercentFee,
		Currency:   config.StripeCurrency,
	}
}

func GetChargeConfigs(c *gin.Context) {
	chargeConfigs, err := model.GetChargeConfigs()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"list": chargeConfigs,
		},
	})
}

func CreateChargeOrder(c *gin.Context) {
	var req struct {
		UserId   int `json:"user_id"`
		ChargeId int `json:"charge_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	chargeUrl, appOrderId, err := model.CreateStripeOrder(req.UserId, req.ChargeId, stripeGateway(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"charge_url":   chargeUrl,
			"app_order_id": appOrderId,
		},
	})
}

func StripeCallback(c *gin.Context) {
	err := model.HandleStripeCallback(c.Writer, c.Request)
	if err != nil {
		logger.SysLog(fmt.Sprintf("stripe callback error: %+v", err))
		c.String(http.StatusBadRequest, "fail")
		return
	}
	c.String(http.StatusOK, "ok")
}

func GetUserChargeOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	userId, _ := strconv.Atoi(c.Query("user_id"))
	status, _ := strconv.Atoi(c.Query("status"))
	orders, total, err := model.GetUserChargeOrdersAndCount(userId, status, page, config.ItemsPerPage)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"list":  orders,
			"total": total,
		},
	})
}

// TopUpPreview 按当前折扣档和手续费核算应付金额，不建单
func TopUpPreview(c *gin.Context) {
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	configs, err := model.GetChargeConfigs()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	gateway := stripeGateway()
	if req.Currency != "" {
		gateway.Currency = req.Currency
	}
	rate := common.GetExchangeRate(gateway.Currency)
	quote, err := billing.ComputeTopUp(req.Amount, gateway,
		model.DiscountTableFromConfigs(configs), config.BaseCurrency, rate)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    quote,
	})
}
