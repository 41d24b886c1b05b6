// Package image loads raw firmware images into memory. The loaded bytes are
// treated as read-only for the lifetime of the Buffer.
package image

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// MaxSize is the largest image Load will accept.
const MaxSize = 100_000_000

var (
	// ErrNotFound is returned when the image file does not exist.
	ErrNotFound = errors.New("image not found")
	// ErrPermission is returned when the image file cannot be opened for reading.
	ErrPermission = errors.New("image permission denied")
	// ErrTooLarge is returned when the image exceeds MaxSize.
	ErrTooLarge = errors.New("image too large")
)

// Buffer holds the bytes of a firmware image.
type Buffer struct {
	Path     string
	FileSize int64
	data     []byte
	unmap    func([]byte) error
}

// FromBytes wraps b without copying. The caller must not modify b afterwards.
func FromBytes(b []byte) *Buffer {
	return &Buffer{FileSize: int64(len(b)), data: b}
}

// Bytes returns the image contents. The slice must not be modified.
func (b *Buffer) Bytes() []byte { return b.data }

// Size returns the number of bytes held in memory.
func (b *Buffer) Size() int { return len(b.data) }

// Mapped reports whether the buffer is backed by a memory mapping.
func (b *Buffer) Mapped() bool { return b.unmap != nil }

// Close releases a memory mapping. It is a no-op for heap buffers.
func (b *Buffer) Close() error {
	if b == nil || b.unmap == nil {
		return nil
	}
	err := b.unmap(b.data)
	b.data = nil
	b.unmap = nil
	return err
}

// Load reads the whole file at path into memory.
func Load(path string) (*Buffer, error) {
	f, size, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("image: read %s: %w", path, err)
	}
	return &Buffer{Path: path, FileSize: size, data: data}, nil
}

// LoadMapped maps the file at path read-only. Platforms without mmap support
// fall back to Load.
func LoadMapped(path string) (*Buffer, error) {
	f, size, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if size == 0 {
		return &Buffer{Path: path}, nil
	}
	data, unmap, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("image: mmap %s: %w", path, err)
	}
	if unmap == nil {
		return Load(path)
	}
	return &Buffer{Path: path, FileSize: size, data: data, unmap: unmap}, nil
}

// open opens path and checks its size against MaxSize.
func open(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, classify(path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("image: stat %s: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("image: %s is a directory", path)
	}

	size := fi.Size()
	if size > MaxSize {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, size, MaxSize)
	}
	return f, size, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermission, path, err)
	default:
		return fmt.Errorf("image: open %s: %w", path, err)
	}
}
