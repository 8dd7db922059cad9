// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

const (
	// DefaultBlockSize is the default decompression block size.
	DefaultBlockSize = 32 * 1024

	// minBlockSize is the smallest usable block size.
	minBlockSize = 4
)

// ZlibLineReader exposes a zlib- or gzip-compressed byte source as a
// LineReader.
//
// The framing is detected from the stream header, so any single-stream
// zlib-compatible payload works, including gzip. Unlike a seek-based gzip
// wrapper this works with non-seekable sources such as network bodies.
//
// The block size is the number of bytes requested per underlying read.
// Larger blocks improve throughput; smaller blocks reduce memory.
type ZlibLineReader struct {
	zr     io.Reader
	closer io.Closer

	block     []byte
	acc       []byte
	exhausted bool
}

var _ interface {
	LineReader
	io.Closer
} = (*ZlibLineReader)(nil)

// NewZlibLineReader returns a ZlibLineReader over r.
//
// A blockSize of 0 selects DefaultBlockSize; a block size below 4 bytes is
// an error. Construction fails if r does not begin with a zlib or gzip
// header.
func NewZlibLineReader(r io.Reader, blockSize int) (*ZlibLineReader, error) {
	return newZlibLineReader(r, blockSize, CompressionAuto)
}

func newZlibLineReader(r io.Reader, blockSize int, comp Compression) (*ZlibLineReader, error) {
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < minBlockSize {
		return nil, errors.Errorf("block size must be at least %d bytes", minBlockSize)
	}

	// Cap every read issued to the underlying source at blockSize bytes.
	br := bufio.NewReader(&cappedReader{r: r, limit: blockSize})

	zr, closer, err := newDecompressor(br, comp)
	if err != nil {
		return nil, err
	}
	return &ZlibLineReader{
		zr:     zr,
		closer: closer,
		block:  make([]byte, blockSize),
	}, nil
}

// newDecompressor selects the decompression framing for br. CompressionAuto
// resolves to gzip or zlib by inspecting the stream header.
func newDecompressor(br *bufio.Reader, comp Compression) (io.Reader, io.Closer, error) {
	if comp == CompressionAuto {
		magic, err := br.Peek(2)
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading compression header")
		}
		if isGzipHeader(magic) {
			comp = CompressionGzip
		} else {
			comp = CompressionZlib
		}
	}

	switch comp {
	case CompressionGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating gzip reader")
		}
		return gz, gz, nil

	case CompressionZlib:
		zl, err := zlib.NewReader(br)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating zlib reader")
		}
		return zl, zl, nil

	default:
		return nil, nil, errors.Errorf("unknown compression: %s", comp)
	}
}

// ReadLine implements LineReader.
//
// Decompressed bytes accumulate until a line terminator is seen. When the
// source is exhausted with no terminator, the remaining bytes form a final
// terminator-less line, emitted exactly once.
func (z *ZlibLineReader) ReadLine() (string, error) {
	for {
		if i := bytes.IndexByte(z.acc, '\n'); i >= 0 {
			line := string(z.acc[:i+1])
			z.acc = z.acc[i+1:]
			return line, nil
		}

		if z.exhausted {
			if len(z.acc) == 0 {
				return "", io.EOF
			}
			line := string(z.acc)
			z.acc = nil
			return line, nil
		}

		n, err := z.zr.Read(z.block)
		z.acc = append(z.acc, z.block[:n]...)
		switch {
		case err == io.EOF:
			z.exhausted = true
		case err != nil:
			return "", errors.Wrap(err, "decompressing block")
		}
	}
}

// Close releases the decompressor. It does not close the underlying byte
// source, which the caller owns.
func (z *ZlibLineReader) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

// cappedReader limits the number of bytes requested per Read call.
type cappedReader struct {
	r     io.Reader
	limit int
}

func (cr *cappedReader) Read(p []byte) (int, error) {
	if len(p) > cr.limit {
		p = p[:cr.limit]
	}
	return cr.r.Read(p)
}

func isGzipHeader(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b
}

// isZlibHeader reports whether magic plausibly starts a zlib stream: the
// low CMF nibble is the deflate method and the header checksum holds.
func isZlibHeader(magic []byte) bool {
	if len(magic) < 2 || magic[0]&0x0f != 8 {
		return false
	}
	return (uint32(magic[0])<<8|uint32(magic[1]))%31 == 0
}
