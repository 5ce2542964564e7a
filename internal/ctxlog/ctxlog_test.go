package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("hello")

	assert.Same(t, logger, FromContext(ctx))
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestFromContextWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Error("dropped")
}

func TestFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv("RFPARSE_TEST_DEBUG", "")
		var buf bytes.Buffer
		newEnvLogger(&buf, "RFPARSE_TEST_DEBUG").Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("RFPARSE_TEST_DEBUG", "1")
		var buf bytes.Buffer
		newEnvLogger(&buf, "RFPARSE_TEST_DEBUG").Debug("shown", "line", 3)
		assert.Equal(t, "msg=shown line=3\n", buf.String())
	})

	assert.NotNil(t, FromEnv("RFPARSE_TEST_DEBUG"))
}
