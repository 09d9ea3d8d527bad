package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_LevelFallback(t *testing.T) {
	// 非法 level 回退 Info：debug 日志应被丢弃
	l := New("test", "not-a-level")
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestNew_DebugLevel(t *testing.T) {
	l := New("test", "debug")
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestOr(t *testing.T) {
	assert.NotNil(t, Or(nil))

	l := New("test", "info")
	assert.Equal(t, l, Or(l))
}
