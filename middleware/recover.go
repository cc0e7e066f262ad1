package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ezlinkai/console/common/helper"
	"github.com/ezlinkai/console/common/logger"
	"github.com/gin-gonic/gin"
)

func PanicRecover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.SysError(fmt.Sprintf("panic detected: %v", err))
				logger.SysError(fmt.Sprintf("stacktrace from panic: %s", string(debug.Stack())))
				message := fmt.Sprintf("Panic detected, error: %v. Please submit send email help@ezlinkai.com", err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"message": helper.MessageWithRequestId(message, c.GetString(logger.RequestIdKey)),
						"type":    "console_panic",
					},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
