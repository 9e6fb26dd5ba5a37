package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	t.Run("Positional", func(t *testing.T) {
		args, err := parseArguments([]string{"/data/littlefs", "/data/state.json"})
		require.NoError(t, err)
		assert.Equal(t, "/data/littlefs", args.Directory)
		assert.Equal(t, "/data/state.json", args.StateFile)
		assert.Equal(t, -1, args.VerboseLevel)
	})

	t.Run("Options", func(t *testing.T) {
		args, err := parseArguments([]string{
			"--config", "/etc/lfscheck.ini",
			"--verbose", "2",
			"--debug", "walk,state",
			"dir", "state.json",
		})
		require.NoError(t, err)
		assert.Equal(t, "/etc/lfscheck.ini", args.ConfigPath)
		assert.Equal(t, 2, args.VerboseLevel)
		assert.Equal(t, "walk,state", args.DebugFlags)
		assert.Equal(t, "dir", args.Directory)
		assert.Equal(t, "state.json", args.StateFile)
	})

	t.Run("Help", func(t *testing.T) {
		args, err := parseArguments([]string{"--help"})
		require.NoError(t, err)
		assert.True(t, args.ShowHelp)
	})

	t.Run("Version", func(t *testing.T) {
		args, err := parseArguments([]string{"--version"})
		require.NoError(t, err)
		assert.True(t, args.ShowVersion)
	})

	t.Run("WrongArgumentCount", func(t *testing.T) {
		_, err := parseArguments([]string{"only-one"})
		assert.Error(t, err)

		_, err = parseArguments([]string{"one", "two", "three"})
		assert.Error(t, err)

		_, err = parseArguments(nil)
		assert.Error(t, err)
	})

	t.Run("UnknownOption", func(t *testing.T) {
		_, err := parseArguments([]string{"--frobnicate", "dir", "state"})
		assert.Error(t, err)
	})

	t.Run("MissingOptionValue", func(t *testing.T) {
		_, err := parseArguments([]string{"dir", "state", "--verbose"})
		assert.Error(t, err)
	})

	t.Run("BadVerboseLevel", func(t *testing.T) {
		_, err := parseArguments([]string{"--verbose", "loud", "dir", "state"})
		assert.Error(t, err)
	})
}

func TestRunExitCodes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))
	statePath := filepath.Join(t.TempDir(), "state.json")

	// First run: regeneration required, state saved as a side effect.
	assert.Equal(t, exitRegenerate, run([]string{root, statePath}))
	_, err := os.Stat(statePath)
	require.NoError(t, err)

	// Unchanged tree.
	assert.Equal(t, exitUnchanged, run([]string{root, statePath}))

	// Changed tree.
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello!"), 0644))
	assert.Equal(t, exitRegenerate, run([]string{root, statePath}))

	// And stable again after the state was rewritten.
	assert.Equal(t, exitUnchanged, run([]string{root, statePath}))
}

func TestRunBadInvocation(t *testing.T) {
	assert.Equal(t, exitRegenerate, run(nil))
	assert.Equal(t, exitRegenerate, run([]string{"just-one-argument"}))
}

func TestRunMissingDirectory(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	missing := filepath.Join(t.TempDir(), "missing")

	assert.Equal(t, exitRegenerate, run([]string{missing, statePath}))

	// No digest was computed, no state written.
	_, err := os.Stat(statePath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunSaveFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))

	stateDir := t.TempDir()
	require.NoError(t, os.Chmod(stateDir, 0555))
	t.Cleanup(func() { os.Chmod(stateDir, 0755) })

	assert.Equal(t, exitSaveFailed, run([]string{root, filepath.Join(stateDir, "state.json")}))
}

func TestRunHelpAndVersion(t *testing.T) {
	assert.Equal(t, exitUnchanged, run([]string{"--help"}))
	assert.Equal(t, exitUnchanged, run([]string{"--version"}))
}
