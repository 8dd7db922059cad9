// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// NewCharsetLineReader returns a LineReader that transcodes r from enc to
// UTF-8 before splitting lines.
//
// Use this in front of the tabular readers when the transport encoding is
// not UTF-8 compatible, e.g. a legacy single-byte codepage.
func NewCharsetLineReader(r io.Reader, enc encoding.Encoding) LineReader {
	return NewLineReader(transform.NewReader(r, enc.NewDecoder()))
}
