package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "porthu-addon")
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"--no-such-flag"}, &stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"--log-level", "verbose"}, &stdout, &stderr)
		require.Error(t, err)
	})
}
