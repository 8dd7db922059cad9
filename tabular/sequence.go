// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"io"

	"github.com/datalect/serial/record"
	"github.com/datalect/serial/stream"
	"github.com/datalect/serial/support/logging"

	"github.com/pkg/errors"
)

// ReaderFactory builds the Reader used for each source in a ReaderSequence,
// e.g. a closure around NewDelimitedReader.
type ReaderFactory func(lines stream.LineReader) Reader

// ReaderSequence presents a sequence of line sources as a single record
// source.
//
// The first source is opened lazily on the first Read. When the active
// source is exhausted its stream is closed and the next source is opened;
// io.EOF is returned only once every source is exhausted.
//
// Filtering is applied at the sequence level, not per source. For filters
// that stop iteration this may not be the desired behavior: a stop here
// terminates the entire sequence, not just the current source. To stop
// individual sources instead, have the factory return readers with the
// appropriate filter already installed.
type ReaderSequence struct {
	// Logger, if not nil, receives source-transition diagnostics.
	Logger logging.L

	chain   record.Chain
	factory ReaderFactory
	sources []stream.Source

	active Reader
	closer io.Closer
}

var _ Reader = (*ReaderSequence)(nil)

// NewReaderSequence returns a ReaderSequence reading each source through a
// Reader built by factory.
func NewReaderSequence(factory ReaderFactory, sources ...stream.Source) *ReaderSequence {
	return &ReaderSequence{
		factory: factory,
		sources: sources,
	}
}

// Filter appends sequence-level filters, or clears them all when called
// with no arguments.
func (rs *ReaderSequence) Filter(filters ...record.Filter) {
	rs.chain.Add(filters...)
}

// Read returns the next filtered record from the sequence, or io.EOF once
// every source is exhausted.
func (rs *ReaderSequence) Read() (record.Record, error) {
	for {
		if rs.active == nil {
			if err := rs.advance(); err != nil {
				return nil, err
			}
		}

		rec, err := rs.active.Read()
		switch {
		case err == io.EOF:
			// The active source is exhausted; close it and move on.
			if cerr := rs.closeActive(); cerr != nil {
				return nil, cerr
			}
			continue
		case err != nil:
			return nil, err
		}

		out, rejected, err := rs.chain.Apply(rec)
		switch {
		case errors.Cause(err) == record.ErrStopIteration:
			// A stop at this level ends the entire sequence.
			return nil, io.EOF
		case err != nil:
			return nil, err
		case rejected:
			readerRejected.Inc()
			continue
		}
		return out, nil
	}
}

// advance opens the next source, or returns io.EOF when none remain.
func (rs *ReaderSequence) advance() error {
	if len(rs.sources) == 0 {
		return io.EOF
	}
	src := rs.sources[0]
	rs.sources = rs.sources[1:]

	lines, closer, err := src.Open()
	if err != nil {
		return err
	}
	rs.active, rs.closer = rs.factory(lines), closer
	rs.logger().Debugf("reader sequence: opened source %s", src)
	return nil
}

func (rs *ReaderSequence) closeActive() error {
	rs.active = nil
	if rs.closer == nil {
		return nil
	}
	closer := rs.closer
	rs.closer = nil
	if err := closer.Close(); err != nil {
		return errors.Wrap(err, "closing source")
	}
	return nil
}

// Close releases the active source and every remaining source with close
// capability. It must be called on every exit path of the owning scope,
// including error exits.
func (rs *ReaderSequence) Close() error {
	err := rs.closeActive()
	for _, src := range rs.sources {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	rs.sources = nil
	return err
}

func (rs *ReaderSequence) logger() logging.L { return logging.Must(rs.Logger) }
