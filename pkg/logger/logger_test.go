package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { level.SetLevel(zapcore.InfoLevel) })

	SetLevel("debug")
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.True(t, WithComponent("test").Core().Enabled(zapcore.DebugLevel))

	SetLevel("shout")
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}
