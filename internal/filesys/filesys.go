// Package filesys provides file system abstractions and utilities for folio.
// It defines the small interfaces the configuration loader, the config cache
// and the CLI need, and an implementation that delegates to the standard
// library, making it easier to test code that interacts with the file system.
package filesys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lc/folio/internal/log"
)

// StatFS is what the config cache needs to detect external edits.
type StatFS interface {
	Stat(string) (fs.FileInfo, error)
}

// ReadFS is the tiny surface the *config loader* needs.
// It is intentionally smaller than os.File because the loader
// reads whole files and never writes.
type ReadFS interface {
	StatFS
	ReadFile(string) ([]byte, error)
}

// FileOps is what `folio config init` needs for its atomicWrite helper.
type FileOps interface {
	Open(string) (*os.File, error)
	MkdirAll(string, os.FileMode) error
	CreateTemp(string, string) (*os.File, error)
	Rename(string, string) error
	Remove(string) error
	Chmod(string, os.FileMode) error
}

// OS returns a file system implementation that delegates to the standard library.
// The returned implementation satisfies ReadFS, StatFS and FileOps.
func OS() OsFS {
	return OsFS{}
}

// OsFS implements ReadFS and FileOps against the local disk.
// All methods delegate to the standard library.
type OsFS struct{}

func (OsFS) Stat(p string) (fs.FileInfo, error)           { return os.Stat(p) }
func (OsFS) ReadFile(p string) ([]byte, error)            { return os.ReadFile(p) }
func (OsFS) Open(p string) (*os.File, error)              { return os.Open(p) }
func (OsFS) MkdirAll(p string, m os.FileMode) error       { return os.MkdirAll(p, m) }
func (OsFS) CreateTemp(dir, pat string) (*os.File, error) { return os.CreateTemp(dir, pat) }
func (OsFS) Rename(old, newName string) error             { return os.Rename(old, newName) }
func (OsFS) Remove(p string) error                        { return os.Remove(p) }
func (OsFS) Chmod(p string, m os.FileMode) error          { return os.Chmod(p, m) }

var (
	_ ReadFS  = OsFS{}
	_ StatFS  = OsFS{}
	_ FileOps = OsFS{}
)

// AtomicWrite atomically persists data to dst with the provided file mode.
// The write is crash-safe on local filesystems:
//
//  1. mkdir -p the parent directory
//  2. temp file in the same dir
//  3. fsync(temp) + close
//  4. chmod(temp, perm)  (so rename doesn’t carry 0600 default)
//  5. rename(temp, dst)
//  6. fsync(dir)
//
// A reader of dst sees either the old content or the new content, never a
// partial file, so a config cache stat'ing dst never loads a torn write.
func AtomicWrite(fsys FileOps, dst string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(dst)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := fsys.CreateTemp(dir, ".folio-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	cerr := tmp.Close()
	if err == nil {
		err = cerr
	}
	if err == nil {
		err = fsys.Chmod(tmp.Name(), perm)
	}
	if err == nil {
		err = fsys.Rename(tmp.Name(), dst)
	}
	if err != nil {
		if removeErr := fsys.Remove(tmp.Name()); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Warnf("failed to remove temp file %s: %v", tmp.Name(), removeErr)
		}
		return err
	}
	if d, err2 := fsys.Open(dir); err2 == nil {
		if syncErr := d.Sync(); syncErr != nil {
			log.Warnf("failed to sync directory %s: %v", dir, syncErr)
		}
		if closeErr := d.Close(); closeErr != nil {
			log.Warnf("failed to close directory %s: %v", dir, closeErr)
		}
	}
	return nil
}
