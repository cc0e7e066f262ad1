package common

import (
	"github.com/bytedance/gopkg/util/gopool"
)

// SafeGoroutine runs f on the shared goroutine pool, recovering panics
// so that background recording never takes down the request path.
func SafeGoroutine(f func()) {
	gopool.Go(f)
}
