package controller

import (
	"net/http"
	"strconv"

	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/model"
	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":             common.Version,
			"system_name":         config.SystemName,
			"server_address":      config.ServerAddress,
			"quota_per_unit":      config.QuotaPerUnit,
			"display_in_currency": config.DisplayInCurrencyEnabled,
			"base_currency":       config.BaseCurrency,
			"stripe_enabled":      config.StripePaymentEnabled,
		},
	})
}

func GetLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	logType, _ := strconv.Atoi(c.Query("type"))
	startTimestamp, _ := strconv.ParseInt(c.Query("start_timestamp"), 10, 64)
	endTimestamp, _ := strconv.ParseInt(c.Query("end_timestamp"), 10, 64)
	modelName := c.Query("model_name")
	logs, total, err := model.GetAllLogsAndCount(logType, startTimestamp, endTimestamp, modelName, page, config.ItemsPerPage)
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
			"list":  logs,
			"total": total,
		},
	})
}
