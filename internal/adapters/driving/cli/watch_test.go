package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch <dir>", watchCmd.Use)
}

func TestWatchCmd_RequiresDir(t *testing.T) {
	setupTestServices(t, nil)

	_, err := executeCommand(t, "watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestWatchCmd_MissingDir(t *testing.T) {
	setupTestServices(t, nil)

	_, err := executeCommand(t, "watch", filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func TestWatchCmd_InitialAndChanges(t *testing.T) {
	setupTestServices(t, nil)
	dir := writeCorpus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "later.txt"), []byte(foxText+foxText), 0o644)
	}()

	out, err := executeCommandContext(t, ctx, "", "watch", dir, "--initial", "--json")
	require.NoError(t, err)

	assert.Contains(t, out, "fox.txt")
	assert.NotContains(t, out, "short.md")
	assert.Contains(t, out, "later.txt")
}
