package router

import (
	"github.com/ezlinkai/console/controller"
	"github.com/ezlinkai/console/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine) {
	router.Use(middleware.CORS())
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		apiRouter.GET("/status", controller.GetStatus)
		apiRouter.GET("/log", controller.GetLogs)
		apiRouter.GET("/package", controller.GetUserPackages)

		chargeRoute := apiRouter.Group("/charge")
		{
			chargeRoute.POST("/preview", controller.ChargePreview)
			chargeRoute.GET("/configs", controller.GetChargeConfigs)
			chargeRoute.GET("/order", controller.GetUserChargeOrders)
			chargeRoute.POST("/order", controller.CreateChargeOrder)
			chargeRoute.POST("/callback", controller.StripeCallback)
		}

		apiRouter.POST("/topup/preview", controller.TopUpPreview)

		apiRouter.GET("/option", controller.GetOptions)
		apiRouter.PUT("/option", controller.UpdateOption)
	}
}
