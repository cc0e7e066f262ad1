package controller

import (
	"net/http"
	"time"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/helper"
	"github.com/ezlinkai/console/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ChargePreviewRequest 核算请求。事件里带了元数据就按元数据复算，
// 没带按当前倍率表算。
type ChargePreviewRequest struct {
	Event   billing.UsageEvent          `json:"event"`
	Extras  []billing.ExtraBillingItem  `json:"extras,omitempty"`
	Package *billing.ResourcePackageRef `json:"package,omitempty"`
	UserId  int                         `json:"user_id"`
	Record  bool                        `json:"record"`
}

// ChargePreview 核算一次用量的配额消耗。Record 为真时异步落消费
// 日志；指定资源包时真正从包内扣减，余额不足按原样返回核算结果
// 并置 insufficient 标记。
func ChargePreview(c *gin.Context) {
	startTime := time.Now()
	var req ChargePreviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	event := req.Event
	if event.RequestId == "" {
		event.RequestId = helper.GenRequestID()
	}

	price := billing.ResolvePrice(&event, common.RatioSchedule{}, model.GroupCache{})

	var result *billing.ChargeResult
	var err error
	insufficient := false
	if req.Package != nil {
		result, err = billing.ChargeWithPackage(c.Request.Context(), model.PackageStore{}, *req.Package, &event, price, req.Extras)
		if err != nil && errors.Is(err, billing.ErrInsufficientPackageBalance) {
			insufficient = true
			err = nil
		}
	} else {
		result, err = billing.ComputeCharge(&event, price, req.Extras)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	content := billing.RenderRatioSummary(price)
	if req.Record && !insufficient {
		duration := time.Since(startTime).Seconds()
		model.RecordConsumeLog(c.Request.Context(), req.UserId, &event, result, content, duration)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"request_id":   event.RequestId,
			"result":       result,
			"summary":      content,
			"breakdown":    billing.RenderBreakdown(result),
			"insufficient": insufficient,
		},
	})
}
