package lfscheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryListSortsWithinContext(t *testing.T) {
	list := newEntryList()
	list.Insert("zebra.txt", entryContextFile)
	list.Insert("apple.txt", entryContextFile)
	list.Insert("mango.txt", entryContextFile)
	list.Insert("zoo", entryContextDir)
	list.Insert("attic", entryContextDir)

	require.Equal(t, 5, list.Length())

	var files []string
	list.ForEachContext(entryContextFile, func(name string) bool {
		files = append(files, name)
		return true
	})
	assert.Equal(t, []string{"apple.txt", "mango.txt", "zebra.txt"}, files)

	var dirs []string
	list.ForEachContext(entryContextDir, func(name string) bool {
		dirs = append(dirs, name)
		return true
	})
	assert.Equal(t, []string{"attic", "zoo"}, dirs)
}

func TestEntryListEarlyStop(t *testing.T) {
	list := newEntryList()
	list.Insert("a", entryContextFile)
	list.Insert("b", entryContextFile)
	list.Insert("c", entryContextFile)

	var seen []string
	list.ForEachContext(entryContextFile, func(name string) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestEntryListContextsDoNotMix(t *testing.T) {
	list := newEntryList()
	list.Insert("shared-name", entryContextDirLink)

	var files []string
	list.ForEachContext(entryContextFile, func(name string) bool {
		files = append(files, name)
		return true
	})
	assert.Empty(t, files)
}
