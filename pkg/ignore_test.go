package lfscheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreManagerPatterns(t *testing.T) {
	patternFile := filepath.Join(t.TempDir(), "ignore")
	content := `# comment line

\.tmp$
^secret/
thumbs\.db
`
	require.NoError(t, os.WriteFile(patternFile, []byte(content), 0644))

	ignore := NewIgnoreManager(patternFile)
	require.NoError(t, ignore.Load())

	assert.True(t, ignore.ShouldIgnore("scratch.tmp"))
	assert.True(t, ignore.ShouldIgnore("sub/scratch.tmp"))
	assert.True(t, ignore.ShouldIgnore("secret/key.pem"))
	assert.True(t, ignore.ShouldIgnore("images/thumbs.db"))
	assert.False(t, ignore.ShouldIgnore("a.txt"))
	assert.False(t, ignore.ShouldIgnore("tmp/data.bin"))
}

func TestIgnoreManagerMissingFile(t *testing.T) {
	ignore := NewIgnoreManager(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, ignore.Load())
	assert.False(t, ignore.ShouldIgnore("anything"))
}

func TestIgnoreManagerEmptyPath(t *testing.T) {
	ignore := NewIgnoreManager("")
	require.NoError(t, ignore.Load())
	assert.False(t, ignore.ShouldIgnore("anything"))
}

func TestIgnoreManagerBadPattern(t *testing.T) {
	patternFile := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(patternFile, []byte("([unclosed\n"), 0644))

	assert.Error(t, NewIgnoreManager(patternFile).Load())
}
