package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/common/logger"
)

var (
	PackageCacheSeconds    = config.SyncFrequency
	GroupRatioCacheSeconds = config.SyncFrequency
)

func CacheGetPackage(id int64) (*ResourcePackage, error) {
	if !common.RedisEnabled {
		return GetResourcePackageById(id)
	}
	key := fmt.Sprintf("package:%d", id)
	cached, err := common.RedisGet(key)
	if err != nil {
		pkg, err := GetResourcePackageById(id)
		if err != nil {
			return nil, err
		}
		jsonBytes, err := json.Marshal(pkg)
		if err != nil {
			return nil, err
		}
		err = common.RedisSet(key, string(jsonBytes), time.Duration(PackageCacheSeconds)*time.Second)
		if err != nil {
			logger.SysError("Redis set package error: " + err.Error())
		}
		return pkg, nil
	}
	var pkg ResourcePackage
	err = json.Unmarshal([]byte(cached), &pkg)
	return &pkg, err
}

func invalidatePackageCache(id int64) {
	if !common.RedisEnabled {
		return
	}
	err := common.RedisDel(fmt.Sprintf("package:%d", id))
	if err != nil {
		logger.SysError("Redis del package error: " + err.Error())
	}
}

// GroupCache 缓存版的分组折扣来源，核算读路径走 Redis
type GroupCache struct{}

func (GroupCache) GroupRatio(group string) (float64, bool) {
	if _, ok := common.GroupRatio[group]; !ok {
		return 0, false
	}
	return CacheGetGroupRatio(group), true
}

// CacheGetGroupRatio 分组倍率走 Redis，未命中回源内存表并回填。
// 倍率表本身由选项同步维护，这里只为多实例读路径减压。
func CacheGetGroupRatio(group string) float64 {
	if !common.RedisEnabled {
		return common.GetGroupRatio(group)
	}
	key := fmt.Sprintf("group_ratio:%s", group)
	cached, err := common.RedisGet(key)
	if err != nil {
		ratio := common.GetGroupRatio(group)
		err = common.RedisSet(key, fmt.Sprintf("%f", ratio), time.Duration(GroupRatioCacheSeconds)*time.Second)
		if err != nil {
			logger.SysError("Redis set group ratio error: " + err.Error())
		}
		return ratio
	}
	var ratio float64
	_, err = fmt.Sscanf(cached, "%f", &ratio)
	if err != nil {
		return common.GetGroupRatio(group)
	}
	return ratio
}
