// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Compression identifies the compression framing of an input byte source.
type Compression int

const (
	// CompressionAuto detects the framing from the stream header,
	// falling back to plain text in OpenLines.
	CompressionAuto Compression = iota
	// CompressionNone reads the source as plain text.
	CompressionNone
	// CompressionZlib forces zlib framing.
	CompressionZlib
	// CompressionGzip forces gzip framing.
	CompressionGzip
)

var compressionNames = map[Compression]string{
	CompressionAuto: "AUTO",
	CompressionNone: "NONE",
	CompressionZlib: "ZLIB",
	CompressionGzip: "GZIP",
}

var compressionValues = map[string]Compression{
	"AUTO": CompressionAuto,
	"NONE": CompressionNone,
	"ZLIB": CompressionZlib,
	"GZIP": CompressionGzip,
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// OpenLines resolves comp against r and returns a LineReader for its
// decompressed text.
//
// CompressionAuto sniffs the stream header: gzip and zlib payloads are
// decompressed, anything else is read as plain text. blockSize bounds the
// bytes requested per underlying read in every mode that reads from r here,
// and is forwarded to the decompression adaptor (0 selects
// DefaultBlockSize).
func OpenLines(r io.Reader, comp Compression, blockSize int) (LineReader, error) {
	switch comp {
	case CompressionNone:
		return NewLineReader(r), nil

	case CompressionZlib, CompressionGzip:
		return newZlibLineReader(r, blockSize, comp)

	case CompressionAuto:
		if blockSize == 0 {
			blockSize = DefaultBlockSize
		}
		if blockSize < minBlockSize {
			return nil, errors.Errorf("block size must be at least %d bytes", minBlockSize)
		}
		// Cap reads below the sniffing buffer too, so the block size
		// bounds every request issued to r regardless of framing.
		br := bufio.NewReader(&cappedReader{r: r, limit: blockSize})
		magic, err := br.Peek(2)
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "sniffing compression header")
		}
		if isGzipHeader(magic) || isZlibHeader(magic) {
			return newZlibLineReader(br, blockSize, CompressionAuto)
		}
		return NewLineReader(br), nil

	default:
		return nil, errors.Errorf("unknown compression: %s", comp)
	}
}
