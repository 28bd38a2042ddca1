package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsUsableWithoutInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("hello")
		InfoCtx(context.Background(), "hello")
		ErrorCtx(context.Background(), errors.New("boom"))
	})
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(Replace(zap.New(core)))

	ctx := WithFields(context.Background(), zap.String("request_id", "abc"))
	ctx = WithFields(ctx, zap.String("action", "regtoken"))
	InfoCtx(ctx, "committed", zap.String("ticker", "FOO"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, "regtoken", fields["action"])
	assert.Equal(t, "FOO", fields["ticker"])
}

func TestInitialize(t *testing.T) {
	previous := log
	t.Cleanup(func() { log = previous })

	require.NoError(t, Initialize(Config{Debug: true, Tags: map[string]string{"service": "test"}}))
	assert.NotNil(t, Default())
}
