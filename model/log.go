package model

import (
	"context"
	"fmt"

	"github.com/ezlinkai/console/billing"
	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/common/helper"
	"github.com/ezlinkai/console/common/logger"

	"gorm.io/gorm"
)

type Log struct {
	Id               int     `json:"id"`
	RequestId        string  `json:"request_id" gorm:"index;size:64"`
	UserId           int     `json:"user_id" gorm:"index"`
	CreatedAt        int64   `json:"created_at" gorm:"bigint;index:idx_created_at_type"`
	Type             int     `json:"type" gorm:"index:idx_created_at_type"`
	Content          string  `json:"content"`
	ModelName        string  `json:"model_name" gorm:"index;default:''"`
	Quota            float64 `json:"quota" gorm:"default:0"`
	OriginalQuota    float64 `json:"original_quota" gorm:"default:0"`
	PromptTokens     int64   `json:"prompt_tokens" gorm:"default:0"`
	CompletionTokens int64   `json:"completion_tokens" gorm:"default:0"`
	Duration         float64 `json:"duration" gorm:"default:0"`
}

const (
	LogTypeUnknown = iota
	LogTypeTopup
	LogTypeConsume
	LogTypeManage
	LogTypeSystem
)

func RecordLog(userId int, logType int, content string) {
	if logType == LogTypeConsume && !config.LogConsumeEnabled {
		return
	}
	log := &Log{
		UserId:    userId,
		CreatedAt: helper.GetTimestamp(),
		Type:      logType,
		Content:   content,
	}
	err := LOG_DB.Create(log).Error
	if err != nil {
		logger.SysError("failed to record log: " + err.Error())
	}
}

// RecordConsumeLog 异步落一条消费日志。走协程池，记账失败只报警
// 不影响请求链路。
func RecordConsumeLog(ctx context.Context, userId int, event *billing.UsageEvent, result *billing.ChargeResult, content string, duration float64) {
	logger.Info(ctx, fmt.Sprintf("record consume log: userId=%d, model=%s, quota=%s, content=%s",
		userId, event.ModelName, result.TotalQuota.String(), content))
	if !config.LogConsumeEnabled {
		return
	}
	log := &Log{
		RequestId:        event.RequestId,
		UserId:           userId,
		CreatedAt:        helper.GetTimestamp(),
		Type:             LogTypeConsume,
		Content:          content,
		ModelName:        event.ModelName,
		Quota:            result.TotalQuota.InexactFloat64(),
		OriginalQuota:    result.OriginalQuota.InexactFloat64(),
		PromptTokens:     result.TotalInputTokens,
		CompletionTokens: result.TotalOutputTokens,
		Duration:         duration,
	}
	common.SafeGoroutine(func() {
		err := LOG_DB.Create(log).Error
		if err != nil {
			logger.Error(ctx, "failed to record log: "+err.Error())
		}
	})
}

func GetAllLogsAndCount(logType int, startTimestamp int64, endTimestamp int64, modelName string, page int, pageSize int) (logs []*Log, total int64, err error) {
	var tx *gorm.DB
	if logType == LogTypeUnknown {
		tx = LOG_DB
	} else {
		tx = LOG_DB.Where("type = ?", logType)
	}
	if modelName != "" {
		tx = tx.Where("model_name = ?", modelName)
	}
	if startTimestamp != 0 {
		tx = tx.Where("created_at >= ?", startTimestamp)
	}
	if endTimestamp != 0 {
		tx = tx.Where("created_at <= ?", endTimestamp)
	}
	err = tx.Model(&Log{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	err = tx.Order("id desc").Limit(pageSize).Offset(offset).Find(&logs).Error
	return logs, total, err
}
