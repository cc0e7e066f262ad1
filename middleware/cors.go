package middleware

import (
	"github.com/ezlinkai/console/common/logger"
	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
)

func CORS() gin.HandlerFunc {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowCredentials: true,
		// 控制台只有读写两类接口，没有 DELETE 路由
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Stripe-Signature", logger.RequestIdKey},
		ExposedHeaders: []string{logger.RequestIdKey},
	}
	return cors.New(options)
}
