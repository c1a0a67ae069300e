package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns its combined output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "synaptext", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{
		"ingest", "analyze", "source", "graph", "summary", "export",
		"serve", "mcp", "watch", "settings", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
}

func TestRunBootstrap(t *testing.T) {
	t.Run("installs services and receives flags", func(t *testing.T) {
		prevBoot, prevDir := bootstrap, dataDir
		defer func() {
			bootstrap, dataDir, cleanup = prevBoot, prevDir, nil
		}()

		_, restore := setupTestServices()
		defer restore()

		var got Options
		closed := false
		src := &mockSourceService{}
		bootstrap = func(opts Options) (*Services, func() error, error) {
			got = opts
			return &Services{Source: src}, func() error { closed = true; return nil }, nil
		}
		dataDir = "/tmp/synaptext-data"

		require.NoError(t, runBootstrap(rootCmd, nil))

		assert.Equal(t, "/tmp/synaptext-data", got.DataDir)
		assert.Same(t, src, sourceService)
		require.NotNil(t, cleanup)
		require.NoError(t, cleanup())
		assert.True(t, closed)
	})

	t.Run("propagates bootstrap errors", func(t *testing.T) {
		prevBoot := bootstrap
		defer func() { bootstrap = prevBoot }()

		bootstrap = func(Options) (*Services, func() error, error) {
			return nil, nil, errors.New("open database: disk full")
		}

		err := runBootstrap(rootCmd, nil)

		assert.EqualError(t, err, "open database: disk full")
	})

	t.Run("nil bootstrap is a no-op", func(t *testing.T) {
		prevBoot := bootstrap
		defer func() { bootstrap = prevBoot }()
		bootstrap = nil

		assert.NoError(t, runBootstrap(rootCmd, nil))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

func TestWriteStructured_UnknownFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := writeStructured(rootCmd, "xml", struct{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
