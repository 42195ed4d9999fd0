package buflog

import (
	"os"

	"github.com/klauspost/compress/gzip"
)

// backend abstracts the file I/O strategy behind the writer. Exactly one
// implementation is selected at Start and reused across rotations; Open binds
// the backend to a fresh file. The backend is owned by the writer task and is
// never touched by producers.
type backend interface {
	Open(path string) error
	Write(p []byte) (int, error)
	Flush() error
	Close() error
	Extension() string
}

// plainBackend writes unbuffered sequential files.
type plainBackend struct {
	f *os.File
}

func newPlainBackend() *plainBackend { return &plainBackend{} }

func (b *plainBackend) Open(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	b.f = f
	return nil
}

func (b *plainBackend) Write(p []byte) (int, error) {
	if b.f == nil {
		return 0, os.ErrClosed
	}
	return b.f.Write(p)
}

// Flush syncs file contents to disk. Flush boundaries are the only durability
// guarantee the sink makes.
func (b *plainBackend) Flush() error {
	if b.f == nil {
		return os.ErrClosed
	}
	return b.f.Sync()
}

func (b *plainBackend) Close() error {
	if b.f == nil {
		return nil
	}
	err := b.f.Close()
	b.f = nil
	return err
}

func (b *plainBackend) Extension() string { return "txt" }

// gzipBackend writes through a deflate stream.
type gzipBackend struct {
	f  *os.File
	zw *gzip.Writer
}

func newGzipBackend() *gzipBackend { return &gzipBackend{} }

func (b *gzipBackend) Open(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	b.f = f
	b.zw = gzip.NewWriter(f)
	return nil
}

func (b *gzipBackend) Write(p []byte) (int, error) {
	if b.zw == nil {
		return 0, os.ErrClosed
	}
	return b.zw.Write(p)
}

// Flush issues a partial flush of the deflate stream, keeping flushed data
// inspectable before the stream is finalized, then syncs the file.
func (b *gzipBackend) Flush() error {
	if b.zw == nil {
		return os.ErrClosed
	}
	if err := b.zw.Flush(); err != nil {
		return err
	}
	return b.f.Sync()
}

// Close finalizes the compressed stream and closes the file.
func (b *gzipBackend) Close() error {
	if b.f == nil {
		return nil
	}
	err := b.zw.Close()
	if cerr := b.f.Close(); err == nil {
		err = cerr
	}
	b.f = nil
	b.zw = nil
	return err
}

func (b *gzipBackend) Extension() string { return "gz" }
