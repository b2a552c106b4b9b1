package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "debug", ServiceName: "test", Development: true}))
	assert.NotNil(t, Get())

	// the package-level helpers must not panic once initialized
	Info("hello")
	ErrorContext(context.Background(), "no span in context")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestWithContext_NoSpan(t *testing.T) {
	l := NewNop()
	assert.Same(t, l, l.WithContext(context.Background()))
}
