package cli

import (
	"context"
	"io"
	"testing"

	"github.com/aretw0/airdesk/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.Log{Level: "debug", Format: "json"})
	assert.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(config.Log{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(config.Log{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, "invalid log format")
}

func TestSignalContext_CancelledElsewhere(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}

func TestIsInterrupted(t *testing.T) {
	assert.True(t, isInterrupted(io.EOF))
	assert.True(t, isInterrupted(context.Canceled))
	assert.False(t, isInterrupted(nil))
	assert.False(t, isInterrupted(io.ErrUnexpectedEOF))
}
