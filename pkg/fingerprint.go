package lfscheck

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// NotFoundError reports that the fingerprint root does not exist, is
// not a directory, or cannot be read.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("directory not found or unreadable: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Fingerprinter computes a single digest over a directory tree. The
// zero value is not usable; construct with NewFingerprinter.
type Fingerprinter struct {
	chunkSize int
	ignore    *IgnoreManager
}

// NewFingerprinter creates a fingerprinter reading file contents in
// chunkSize-byte chunks. ignore may be nil, meaning no path is
// excluded. The chunk size never influences the digest.
func NewFingerprinter(chunkSize int, ignore *IgnoreManager) *Fingerprinter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Fingerprinter{
		chunkSize: chunkSize,
		ignore:    ignore,
	}
}

// ComputeDigest fingerprints root with default settings.
func ComputeDigest(root string) (string, error) {
	return NewFingerprinter(DefaultChunkSize, nil).ComputeDigest(root)
}

// ComputeDigest walks the tree rooted at root and returns an MD5
// digest of its structure and contents as a lowercase hex string.
//
// The byte stream fed to the hash is fixed and must never change
// between releases, because persisted digests from earlier runs are
// compared against it directly: for each directory, every file in
// lexicographic name order contributes the UTF-8 bytes of its
// slash-separated path relative to root followed by its raw content;
// subdirectories are then visited recursively, also in lexicographic
// order. Directory names themselves contribute nothing, so an empty
// tree digests to the MD5 of the empty stream.
//
// Symlink handling mirrors the original checker: a symlink resolving
// to a directory is listed with the directories but not descended
// into, so it contributes nothing; a symlink resolving to a file is
// read through like a regular file. Special files contribute their
// path bytes and a read warning. An unreadable file likewise keeps
// its path contribution, is warned about, and skipped.
func (fp *Fingerprinter) ComputeDigest(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", &NotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return "", &NotFoundError{Path: root, Err: fmt.Errorf("not a directory")}
	}
	if err := unix.Access(root, unix.R_OK); err != nil {
		return "", &NotFoundError{Path: root, Err: err}
	}

	if fp.ignore != nil {
		if err := fp.ignore.Load(); err != nil {
			return "", err
		}
	}

	hasher := md5.New()
	if err := fp.walk(hasher, root, ""); err != nil {
		return "", err
	}

	digest := hex.EncodeToString(hasher.Sum(nil))
	Tracef(1, "digest of %s: %s", root, digest)
	return digest, nil
}

// walk feeds one directory level into the hash and recurses. rel is
// the slash-separated path of the directory relative to root, empty
// for the root itself.
func (fp *Fingerprinter) walk(hasher hash.Hash, root, rel string) error {
	dir := root
	if rel != "" {
		dir = filepath.Join(root, filepath.FromSlash(rel))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return &NotFoundError{Path: root, Err: err}
		}
		// An unreadable subdirectory contributes nothing, same as the
		// original walk, which swallowed scandir errors.
		warnf("cannot read directory %s: %v", dir, err)
		return nil
	}

	list := newEntryList()
	for _, entry := range entries {
		name := entry.Name()
		context := entryContextFile
		if entry.IsDir() {
			context = entryContextDir
		} else if entry.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(dir, name)); err == nil && target.IsDir() {
				context = entryContextDirLink
			}
		}
		list.Insert(name, context)
	}
	if DebugEnabled("walk") {
		Tracef(3, "walk: %s: %d entries", dir, list.Length())
	}

	list.ForEachContext(entryContextFile, func(name string) bool {
		relPath := joinRel(rel, name)
		if fp.ignore != nil && fp.ignore.ShouldIgnore(relPath) {
			Tracef(2, "ignoring %s", relPath)
			return true
		}
		hasher.Write([]byte(relPath))
		fp.hashFileContents(hasher, filepath.Join(dir, name))
		return true
	})

	var walkErr error
	list.ForEachContext(entryContextDir, func(name string) bool {
		relPath := joinRel(rel, name)
		if fp.ignore != nil && fp.ignore.ShouldIgnore(relPath) {
			Tracef(2, "ignoring subtree %s", relPath)
			return true
		}
		if err := fp.walk(hasher, root, relPath); err != nil {
			walkErr = err
			return false
		}
		return true
	})
	return walkErr
}

// hashFileContents streams a file's bytes into the hash. Read
// failures are non-fatal: the file's path bytes are already in the
// stream, a warning is printed, and the walk continues. One
// unreadable file must not abort fingerprinting of the whole tree.
func (fp *Fingerprinter) hashFileContents(hasher hash.Hash, path string) {
	file, err := os.Open(path)
	if err != nil {
		warnf("cannot read file %s: %v", path, err)
		return
	}
	defer file.Close()

	buffer := make([]byte, fp.chunkSize)
	for {
		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			warnf("cannot read file %s: %v", path, err)
			return
		}
	}
}

// joinRel joins slash-separated relative path elements. The digest
// stream always uses forward slashes, independent of the platform
// separator.
func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
