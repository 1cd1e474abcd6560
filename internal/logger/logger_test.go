package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInit_Levels(t *testing.T) {
	defer func() { base = zap.NewNop() }()

	for _, lvl := range []string{"debug", "info", "WARN", " error "} {
		assert.NoError(t, Init("test", lvl), lvl)
	}
	assert.Error(t, Init("test", "loud"))
}

func TestLogBeforeInit(t *testing.T) {
	base = zap.NewNop()
	assert.NotPanics(t, func() {
		Info("hello %s", "world")
		Warn("n=%d", 3)
	})
}
