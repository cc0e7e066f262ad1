package controller

import (
	"net/http"
	"strconv"

	"github.com/ezlinkai/console/model"
	"github.com/gin-gonic/gin"
)

func GetUserPackages(c *gin.Context) {
	userId, _ := strconv.Atoi(c.Query("user_id"))
	packages, err := model.GetUserResourcePackages(userId)
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
			"list": packages,
		},
	})
}
