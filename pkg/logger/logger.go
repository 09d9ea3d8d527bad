package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Nop returns a logger that discards everything. SDK 默认用它：
// 不强迫调用方接收我们的日志。
func Nop() *zap.Logger {
	return zap.NewNop()
}

// New 构建一个组件级 logger：JSON、stdout、带 component 字段。
// level: debug/info/warn/error，解析失败回退 Info。
// 调用方已有自己的 zap 体系时直接传 *zap.Logger，不必经过这里。
func New(component string, level string) *zap.Logger {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.MessageKey = "msg"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapLevel,
	)

	return zap.New(core).With(zap.String("component", component))
}

// Or picks l when non-nil, otherwise a nop logger.
func Or(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return zap.NewNop()
}
