// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"io"
	"strings"

	"github.com/datalect/serial/record"
	"github.com/datalect/serial/stream"

	"github.com/pkg/errors"
)

// Reader is the record source protocol: a pull-based iterator over filtered
// records.
//
// Read returns the next record that survives every registered filter, or
// io.EOF once input is exhausted (including when a filter stops iteration).
// Filter appends filters, applied in registration order to every record;
// called with no arguments it clears all filters.
type Reader interface {
	Read() (record.Record, error)
	Filter(filters ...record.Filter)
}

// filterReader implements the shared filtered pull loop on top of a raw
// record source.
type filterReader struct {
	chain record.Chain
	get   func() (record.Record, error)
}

// Filter appends filters, or clears them all when called with no arguments.
func (r *filterReader) Filter(filters ...record.Filter) {
	r.chain.Add(filters...)
}

// Read returns the next record that survives every filter.
//
// Rejected records are retried in a loop, never recursively: reject runs
// can be arbitrarily long. A filter stop is surfaced as io.EOF.
func (r *filterReader) Read() (record.Record, error) {
	for {
		rec, err := r.get()
		if err != nil {
			// io.EOF for true end of input; failures propagate.
			return nil, err
		}

		out, rejected, err := r.chain.Apply(rec)
		switch {
		case errors.Cause(err) == record.ErrStopIteration:
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

// tabularReader is the line-to-record stage shared by the delimited and
// fixed-width readers.
type tabularReader struct {
	filterReader

	lines  stream.LineReader
	fields record.FieldSet

	// Endl is the line terminator stripped from each input line. It may be
	// modified before the first Read.
	Endl string

	// split tokenizes one terminator-stripped line, returning one token
	// selection per field in FieldSet order.
	split func(line string) ([][]string, error)
}

func (t *tabularReader) init(lines stream.LineReader, fields record.FieldSet, split func(string) ([][]string, error)) {
	t.lines = lines
	t.fields = fields
	t.Endl = "\n"
	t.split = split
	t.get = t.next
}

// next parses the next raw record from the stream. Filters have not yet run;
// the record has exactly one key per field.
func (t *tabularReader) next() (record.Record, error) {
	line, err := t.lines.ReadLine()
	if err != nil {
		return nil, err
	}
	line = strings.TrimSuffix(line, t.Endl)

	selections, err := t.split(line)
	if err != nil {
		readerDecodeErrors.Inc()
		return nil, err
	}

	rec := make(record.Record, len(t.fields))
	for i, f := range t.fields {
		v, err := f.Codec.Decode(selections[i])
		if err != nil {
			readerDecodeErrors.Inc()
			return nil, &record.DecodeError{Field: f.Name, Err: err}
		}
		rec[f.Name] = v
	}
	readerRecords.Inc()
	return rec, nil
}

// Fields returns the field names in declaration order.
func (t *tabularReader) Fields() []string { return t.fields.Names() }

// ReadAll drains the reader, returning every surviving record.
func (t *tabularReader) ReadAll() ([]record.Record, error) {
	var recs []record.Record
	for {
		rec, err := t.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

// DelimitedReader reads records from delimited lines of text.
//
// The position of each scalar field is a token index, and the position of
// an array field is a half-open token range.
type DelimitedReader struct {
	tabularReader

	// Delim separates tokens. Empty means any run of whitespace. There is
	// no way to escape delimiters.
	Delim string
}

// NewDelimitedReader returns a DelimitedReader over lines. A delim of ""
// splits on runs of whitespace.
func NewDelimitedReader(lines stream.LineReader, fields record.FieldSet, delim string) *DelimitedReader {
	dr := &DelimitedReader{Delim: delim}
	dr.init(lines, fields, dr.splitLine)
	return dr
}

func (dr *DelimitedReader) splitLine(line string) ([][]string, error) {
	var tokens []string
	if dr.Delim == "" {
		tokens = strings.Fields(line)
	} else {
		tokens = strings.Split(line, dr.Delim)
	}

	selections := make([][]string, len(dr.fields))
	for i, f := range dr.fields {
		sel, err := f.Pos.Select(tokens)
		if err != nil {
			return nil, &record.DecodeError{Field: f.Name, Err: err}
		}
		selections[i] = sel
	}
	return selections, nil
}

// FixedWidthReader reads records from lines delineated by character
// position.
//
// The position of each field is a half-open character range. Positions are
// byte offsets; see record.Pos.
type FixedWidthReader struct {
	tabularReader
}

// NewFixedWidthReader returns a FixedWidthReader over lines.
func NewFixedWidthReader(lines stream.LineReader, fields record.FieldSet) *FixedWidthReader {
	fr := &FixedWidthReader{}
	fr.init(lines, fields, fr.splitLine)
	return fr
}

func (fr *FixedWidthReader) splitLine(line string) ([][]string, error) {
	selections := make([][]string, len(fr.fields))
	for i, f := range fr.fields {
		sub, err := f.Pos.Slice(line)
		if err != nil {
			return nil, &record.DecodeError{Field: f.Name, Err: err}
		}
		selections[i] = []string{sub}
	}
	return selections, nil
}
