package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_RequiresExactlyOneArg(t *testing.T) {
	err := watchCmd.Args(watchCmd, []string{})
	assert.Error(t, err)

	err = watchCmd.Args(watchCmd, []string{"a", "b"})
	assert.Error(t, err)

	err = watchCmd.Args(watchCmd, []string{"a"})
	assert.NoError(t, err)
}

func TestWatchDirectory_RunsRecoverySweep(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingest := &mockIngestor{}
	ingestService = ingest

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	done := make(chan error, 1)
	go func() {
		done <- watchDirectory(ctx, dir)
	}()

	// The recovery loop sweeps once as soon as it starts.
	require.Eventually(t, func() bool {
		return ingest.recoverCalls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchDirectory_ServicesNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	err := watchDirectory(context.Background(), t.TempDir())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}
