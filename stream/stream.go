// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// LineReader yields the next line of text from a stream, or io.EOF once the
// stream is exhausted.
//
// Lines include their terminator, except possibly a final unterminated line.
// A LineReader is iterable exactly once to completion per instance, and must
// keep returning io.EOF after exhaustion.
type LineReader interface {
	ReadLine() (string, error)
}

// LineWriter accepts one line of text per call.
type LineWriter interface {
	WriteLine(line string) error
}

// NewLineReader returns a LineReader that splits r on newlines.
//
// A final line without a trailing newline is still yielded, once.
func NewLineReader(r io.Reader) LineReader {
	return &ioLineReader{br: bufio.NewReader(r)}
}

type ioLineReader struct {
	br  *bufio.Reader
	err error
}

func (lr *ioLineReader) ReadLine() (string, error) {
	if lr.err != nil {
		return "", lr.err
	}

	line, err := lr.br.ReadString('\n')
	if len(line) > 0 {
		// An unterminated final line arrives together with io.EOF; emit
		// it now and surface the EOF on the next call. A read failure
		// arriving with partial data must not be lost the same way: hold
		// it and surface it on the next call.
		if err != nil && err != io.EOF {
			lr.err = errors.Wrap(err, "reading line")
		}
		return line, nil
	}
	if err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		lr.err = errors.Wrap(err, "reading line")
		return "", lr.err
	}
	return line, nil
}

// NewLineWriter returns a LineWriter that writes each line verbatim to w.
func NewLineWriter(w io.Writer) LineWriter {
	return &ioLineWriter{w: w}
}

type ioLineWriter struct {
	w io.Writer
}

func (lw *ioLineWriter) WriteLine(line string) error {
	if _, err := io.WriteString(lw.w, line); err != nil {
		return errors.Wrap(err, "writing line")
	}
	return nil
}
