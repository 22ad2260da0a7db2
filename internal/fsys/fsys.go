// Package fsys provides the filesystem abstraction used by the pipeline
// for reading upload sources and writing output artifacts. It is backed
// by go-billy so tests can run entirely in memory.
package fsys

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// File is the subset of file operations the pipeline performs on an open
// file handle.
type File interface {
	Name() string
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error
}

// Filesystem is the filesystem surface the pipeline depends on.
// Implementations must interpret paths the way the backing filesystem
// does; the OS-backed implementation is rooted at / and expects absolute
// paths.
type Filesystem interface {
	// Create creates or truncates the named file for writing
	Create(name string) (File, error)

	// Exists reports whether the path exists
	Exists(path string) (bool, error)

	// MkdirAll creates the named directory along with any necessary parents
	MkdirAll(path string, perm os.FileMode) error

	// Open opens the named file for reading
	Open(name string) (File, error)

	// ReadFile reads the named file and returns its contents
	ReadFile(path string) ([]byte, error)

	// Stat returns file info for the named path
	Stat(name string) (os.FileInfo, error)

	// WriteFile writes data to the named file, creating it if necessary
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

// FS implements Filesystem using go-billy.
type FS struct {
	fs billy.Filesystem
}

// Create implements Filesystem.Create.
//
//nolint:ireturn // API returns the File interface by design for flexibility.
func (b *FS) Create(name string) (File, error) {
	f, err := b.fs.Create(name)
	if err != nil {
		return nil, fmt.Errorf("fsys: create %q: %w", name, err)
	}
	return f, nil
}

// Exists implements Filesystem.Exists.
func (b *FS) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("fsys: stat %q: %w", path, err)
	}
}

// MkdirAll implements Filesystem.MkdirAll.
func (b *FS) MkdirAll(path string, perm os.FileMode) error {
	if err := b.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("fsys: mkdirall %q: %w", path, err)
	}
	return nil
}

// Open implements Filesystem.Open.
//
//nolint:ireturn // API returns the File interface by design for flexibility.
func (b *FS) Open(name string) (File, error) {
	f, err := b.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("fsys: open %q: %w", name, err)
	}
	return f, nil
}

// ReadFile implements Filesystem.ReadFile.
func (b *FS) ReadFile(path string) ([]byte, error) {
	bts, err := util.ReadFile(b.fs, path)
	if err != nil {
		return nil, fmt.Errorf("fsys: readfile %q: %w", path, err)
	}
	return bts, nil
}

// Stat implements Filesystem.Stat.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("fsys: stat %q: %w", name, err)
	}
	return info, nil
}

// WriteFile implements Filesystem.WriteFile.
func (b *FS) WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := util.WriteFile(b.fs, filename, data, perm); err != nil {
		return fmt.Errorf("fsys: writefile %q: %w", filename, err)
	}
	return nil
}

// Raw returns the underlying go-billy filesystem.
//
//nolint:ireturn // returning interface here is intentional to expose the adapter target.
func (b *FS) Raw() billy.Filesystem {
	return b.fs
}

// NewFS creates a new FS using the given go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{
		fs: fsys,
	}
}

// NewInMemoryFS creates a new in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{
		fs: memfs.New(),
	}
}

// NewOSFS creates a new OS filesystem rooted at the given path.
func NewOSFS(path string) *FS {
	return &FS{
		fs: osfs.New(path),
	}
}
