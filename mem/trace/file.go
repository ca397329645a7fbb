package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/sarchlab/pagesim/mem/vm/pagesim"
)

// Compression identifies how a trace file is encoded.
type Compression int

const (
	// CompressionNone is a plain text trace.
	CompressionNone Compression = iota

	// CompressionLZ4 is an LZ4 frame, selected by the .lz4 extension.
	CompressionLZ4

	// CompressionSnappy is a snappy framed stream, selected by the .sz
	// extension.
	CompressionSnappy
)

// CompressionOf infers the compression of a trace from its file name.
func CompressionOf(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".sz":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// A File is a Reader over a trace file. Open the file again to replay the
// trace.
type File struct {
	*Reader
	file *os.File
}

// Open opens a trace file for reading. Files ending in .lz4 or .sz are
// decompressed on the fly.
func Open(path string, opts ...ReaderOption) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pagesim.NewError(pagesim.ErrKindIO, "open trace",
			fmt.Sprintf("cannot open %s", path), err)
	}

	opts = append([]ReaderOption{WithName(path)}, opts...)

	return &File{
		Reader: NewReader(decompress(f, CompressionOf(path)), opts...),
		file:   f,
	}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.file.Close()
}

func decompress(r io.Reader, c Compression) io.Reader {
	switch c {
	case CompressionLZ4:
		return lz4.NewReader(r)
	case CompressionSnappy:
		return snappy.NewReader(r)
	default:
		return r
	}
}

// NewCompressedWriter wraps w so that what is written to it is encoded with
// c. The returned writer must be closed to flush the encoder.
func NewCompressedWriter(w io.Writer, c Compression) io.WriteCloser {
	switch c {
	case CompressionLZ4:
		return lz4.NewWriter(w)
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w)
	default:
		return nopWriteCloser{w}
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
