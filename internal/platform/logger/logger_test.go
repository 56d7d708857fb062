package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core)).With(zap.String("component", "orders"))

	log.Debug("hidden")
	log.Info("placed", zap.Uint64("order_id", 7))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "placed", entries[0].Message)
		ctx := entries[0].ContextMap()
		assert.Equal(t, "orders", ctx["component"])
		assert.EqualValues(t, 7, ctx["order_id"])
	}
}

func TestNewZapLoggerFallsBackToInfo(t *testing.T) {
	log := NewZapLogger(&ZapLoggerConfig{Level: "verbose", Encoding: "json"})
	zl, ok := log.(*zapLogger)
	if assert.True(t, ok) {
		assert.False(t, zl.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, zl.Core().Enabled(zapcore.InfoLevel))
	}
}
