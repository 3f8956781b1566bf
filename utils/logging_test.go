package utils

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging(t *testing.T) {
	prevFlags := log.Flags()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(prevFlags)
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dashboard.log")
		closeLog, err := SetupLogging(config.LoggingConfig{
			Level:    "info",
			Output:   "file",
			FilePath: path,
			MaxSize:  1,
		})
		require.NoError(t, err)

		log.Printf("pipeline finished")
		closeLog()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "pipeline finished")
	})

	t.Run("debug adds file and line", func(t *testing.T) {
		closeLog, err := SetupLogging(config.LoggingConfig{Level: "debug", Output: "stdout"})
		require.NoError(t, err)
		defer closeLog()

		assert.NotZero(t, log.Flags()&log.Lshortfile)
		assert.NotZero(t, log.Flags()&log.LUTC)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := SetupLogging(config.LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: filepath.Join(blocker, "dashboard.log"),
			MaxSize:  1,
		})
		assert.Error(t, err)
	})
}
