package lfscheck

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// Entry contexts within a directory listing. Symlinks that resolve to
// directories get their own context: they are kept in directory order
// but never descended into (see Fingerprinter).
const (
	entryContextFile    = "file"
	entryContextDir     = "dir"
	entryContextDirLink = "dirlink"
)

// dirEntry is a single name from a directory listing.
type dirEntry struct {
	name string
}

// entryList keeps one directory's entries sorted by name. The
// filesystem reports entries in an unspecified order; inserting them
// into a skiplist keyed by name makes iteration deterministic, which
// the digest depends on.
type entryList struct {
	skiplist *zcsl.ZeroCopySkiplist[dirEntry, string, string]
}

func newEntryList() *entryList {
	getKeyFromItem := func(e *dirEntry) string {
		return e.name
	}
	getItemSize := func(e *dirEntry) int {
		return len(e.name)
	}
	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &entryList{
		skiplist: zcsl.MakeZeroCopySkiplist[dirEntry, string, string](
			16,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}
}

// Insert adds an entry name under the given context.
func (el *entryList) Insert(name string, context string) bool {
	return el.skiplist.Insert(&dirEntry{name: name}, context)
}

// ForEachContext iterates entries with the given context in name
// order; the callback returns false to stop early.
func (el *entryList) ForEachContext(context string, callback func(name string) bool) {
	for current := el.skiplist.First(); current != nil; current = current.Next() {
		if current.Context() != context {
			continue
		}
		entry := current.Item()
		if !callback(entry.name) {
			break
		}
	}
}

// Length returns the number of entries in the list.
func (el *entryList) Length() int {
	return el.skiplist.Length()
}
