package controller

import (
	"net/http"

	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/model"
	"github.com/gin-gonic/gin"
)

func GetOptions(c *gin.Context) {
	var options []*model.Option
	config.OptionMapRWMutex.RLock()
	for k, v := range config.OptionMap {
		options = append(options, &model.Option{
			Key:   k,
			Value: v,
		})
	}
	config.OptionMapRWMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    options,
	})
}

func UpdateOption(c *gin.Context) {
	var option model.Option
	err := c.BindJSON(&option)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "无效的参数",
		})
		return
	}
	err = model.UpdateOption(option.Key, option.Value)
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
	})
}
