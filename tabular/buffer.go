// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"io"

	"github.com/datalect/serial/record"
)

// ReadHook processes one input record for a ReaderBuffer, queuing zero or
// more output records through emit.
type ReadHook func(rec record.Record, emit func(record.Record))

// FlushHook runs when the wrapped reader is exhausted, giving the grouping
// one last chance to emit pending records. It may be invoked again if
// draining continues past the records it emits.
type FlushHook func(emit func(record.Record))

// ReaderBuffer regroups records on top of any Reader.
//
// Unlike a filter, which maps one record to at most one record, a
// ReaderBuffer can merge several input records into one output record or
// expand one input record into several. Output records are surfaced in FIFO
// order; io.EOF is returned only once the queue and the wrapped reader are
// both exhausted.
type ReaderBuffer struct {
	reader Reader
	read   ReadHook
	flush  FlushHook
	queue  []record.Record
}

// NewReaderBuffer returns a ReaderBuffer over r. The read hook is required;
// flush may be nil.
func NewReaderBuffer(r Reader, read ReadHook, flush FlushHook) *ReaderBuffer {
	return &ReaderBuffer{
		reader: r,
		read:   read,
		flush:  flush,
	}
}

// Read returns the next buffered record.
func (rb *ReaderBuffer) Read() (record.Record, error) {
	for len(rb.queue) == 0 {
		rec, err := rb.reader.Read()
		if err == io.EOF {
			if rb.flush != nil {
				rb.flush(rb.emit)
			}
			if len(rb.queue) > 0 {
				break
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		rb.read(rec, rb.emit)
	}

	head := rb.queue[0]
	rb.queue = rb.queue[1:]
	return head, nil
}

func (rb *ReaderBuffer) emit(rec record.Record) {
	rb.queue = append(rb.queue, rec)
}
