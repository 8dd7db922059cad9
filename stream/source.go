// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Source identifies a line input as either a filesystem path, opened lazily
// on first use, or an already-open LineReader.
//
// The variant is fixed at construction; consumers never infer it by trial.
type Source struct {
	path  string
	lines LineReader
}

// PathSource returns a Source that opens path as a plain text file on Open.
// The opener owns the file and receives its closer.
func PathSource(path string) Source { return Source{path: path} }

// ReaderSource returns a Source wrapping an already-open LineReader. Close
// capability is detected through io.Closer; sources without it are simply
// never closed.
func ReaderSource(lines LineReader) Source { return Source{lines: lines} }

// Open resolves the source into a LineReader.
//
// The returned closer releases whatever Open acquired; it is nil for
// wrapped readers without close capability.
func (s Source) Open() (LineReader, io.Closer, error) {
	if s.lines != nil {
		closer, _ := s.lines.(io.Closer)
		return s.lines, closer, nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %q", s.path)
	}
	return NewLineReader(f), f, nil
}

// Close releases an unconsumed source's stream, if it has close capability.
// Path sources that were never opened have nothing to release.
func (s Source) Close() error {
	if c, ok := s.lines.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s Source) String() string {
	if s.lines != nil {
		return "<stream>"
	}
	return s.path
}
