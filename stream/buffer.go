// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer wraps a LineReader with a bounded window of recently produced
// lines, supporting Rewind.
//
// On construction the Buffer eagerly pulls up to its capacity of lines from
// the wrapped source (fewer if the source is short) and places a cursor at
// the window start. While the cursor addresses a buffered line, ReadLine
// replays from the window. Once the cursor reaches the window end, every
// subsequent call fetches a fresh line from the source, evicts the oldest
// window entry and appends the new line; the cursor stays pinned at the
// window end, so the buffer never re-fills a multi-line look-ahead. This
// sticky post-window behavior is intentional: it keeps exactly the last
// capacity lines available for Rewind at all times.
type Buffer struct {
	src    LineReader
	window []string
	cursor int
}

// NewBuffer returns a Buffer over src retaining up to capacity lines of
// history. A capacity below 1 is treated as 1.
//
// Construction reads up to capacity lines from src; a short source is not an
// error, but a source failure is.
func NewBuffer(src LineReader, capacity int) (*Buffer, error) {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		src:    src,
		window: make([]string, 0, capacity),
	}
	for len(b.window) < capacity {
		line, err := src.ReadLine()
		if err == io.EOF {
			// Surface end-of-input only once the window is drained.
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "filling line buffer")
		}
		b.window = append(b.window, line)
	}
	return b, nil
}

// ReadLine implements LineReader.
func (b *Buffer) ReadLine() (string, error) {
	if b.cursor < len(b.window) {
		line := b.window[b.cursor]
		b.cursor++
		return line, nil
	}

	// Past the window: fetch fresh and slide.
	line, err := b.src.ReadLine()
	if err != nil {
		return "", err
	}
	if len(b.window) > 0 {
		copy(b.window, b.window[1:])
		b.window[len(b.window)-1] = line
	} else {
		b.window = append(b.window, line)
	}
	b.cursor = len(b.window)
	return line, nil
}

// Rewind moves the cursor back by n lines, clamped at the start of the
// retained window. Rewound lines are replayed by ReadLine without touching
// the wrapped source. At most the Buffer's capacity of history is available.
func (b *Buffer) Rewind(n int) {
	if n < 0 {
		n = -n
	}
	b.cursor -= n
	if b.cursor < 0 {
		b.cursor = 0
	}
}
