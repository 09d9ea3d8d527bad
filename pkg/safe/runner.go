package safe

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// Go 安全启动协程：panic 只打日志，不把调用方进程带崩。
// log 为 nil 时退化为标准输出。
func Go(log *zap.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())

				if log != nil {
					log.Error("goroutine panic recovered",
						zap.Any("panic", r),
						zap.String("stack", stack),
					)
				} else {
					fmt.Printf("goroutine panic: %v\nstack: %s\n", r, stack)
				}
			}
		}()

		fn()
	}()
}
