// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"strings"

	"github.com/datalect/serial/record"
	"github.com/datalect/serial/stream"

	"github.com/pkg/errors"
)

// Writer is the record sink protocol, symmetric to Reader.
//
// Write passes a record through the filter chain: a rejected record is
// dropped silently, a filter stop propagates record.ErrStopIteration, and a
// surviving record is encoded and emitted. WriteAll writes a sequence of
// records one at a time with the same per-record semantics.
type Writer interface {
	Write(rec record.Record) error
	WriteAll(recs []record.Record) error
	Filter(filters ...record.Filter)
	Fields() []string
}

// tabularWriter is the record-to-line stage shared by the delimited and
// fixed-width writers.
type tabularWriter struct {
	chain  record.Chain
	lines  stream.LineWriter
	fields record.FieldSet

	// Endl is appended to every output line. It may be modified before the
	// first Write.
	Endl string

	// merge joins flattened tokens into one line, terminator excluded.
	merge func(tokens []string) string
}

func (t *tabularWriter) init(lines stream.LineWriter, fields record.FieldSet, merge func([]string) string) {
	t.lines = lines
	t.fields = fields
	t.Endl = "\n"
	t.merge = merge
}

// Filter appends filters, or clears them all when called with no arguments.
func (t *tabularWriter) Filter(filters ...record.Filter) {
	t.chain.Add(filters...)
}

// Fields returns the field names in declaration order.
func (t *tabularWriter) Fields() []string { return t.fields.Names() }

// Write writes one record through the filter chain to the output stream.
func (t *tabularWriter) Write(rec record.Record) error {
	out, rejected, err := t.chain.Apply(rec)
	if err != nil {
		// ErrStopIteration propagates to the caller unchanged.
		return err
	}
	if rejected {
		writerRejected.Inc()
		return nil
	}
	return t.put(out)
}

// WriteAll writes records one at a time, halting at the first error,
// including a filter stop.
func (t *tabularWriter) WriteAll(recs []record.Record) error {
	for _, rec := range recs {
		if err := t.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// put encodes and emits a filtered record. A field missing from the record
// encodes through its codec's default value.
func (t *tabularWriter) put(rec record.Record) error {
	nodes := make([]record.Token, len(t.fields))
	for i, f := range t.fields {
		tok, err := f.Codec.Encode(rec[f.Name])
		if err != nil {
			return &record.DecodeError{Field: f.Name, Err: err}
		}
		nodes[i] = tok
	}

	line := t.merge(flatten(nodes))
	if err := t.lines.WriteLine(line + t.Endl); err != nil {
		return errors.Wrap(err, "writing record")
	}
	writerRecords.Inc()
	return nil
}

// flatten expands nested token sequences inline.
//
// The list is walked left to right: an atomic token advances one position; a
// sequence is spliced in place at the current position and the same position
// is re-evaluated, so sequences nested to any depth flatten completely.
func flatten(nodes []record.Token) []string {
	pos := 0
	for pos < len(nodes) {
		n := nodes[pos]
		if n.Seq == nil {
			pos++
			continue
		}
		expanded := make([]record.Token, 0, len(nodes)+len(n.Seq)-1)
		expanded = append(expanded, nodes[:pos]...)
		expanded = append(expanded, n.Seq...)
		expanded = append(expanded, nodes[pos+1:]...)
		nodes = expanded
	}

	tokens := make([]string, len(nodes))
	for i, n := range nodes {
		tokens[i] = n.Text
	}
	return tokens
}

// DelimitedWriter writes records as delimiter-separated lines.
//
// There is no escaping of delimiter characters inside tokens; a token
// containing the delimiter will corrupt the output line.
type DelimitedWriter struct {
	tabularWriter

	// Delim separates output tokens.
	Delim string
}

// NewDelimitedWriter returns a DelimitedWriter over lines. A delim of ""
// selects a single space.
func NewDelimitedWriter(lines stream.LineWriter, fields record.FieldSet, delim string) *DelimitedWriter {
	if delim == "" {
		delim = " "
	}
	dw := &DelimitedWriter{Delim: delim}
	dw.init(lines, fields, dw.mergeTokens)
	return dw
}

func (dw *DelimitedWriter) mergeTokens(tokens []string) string {
	return strings.Join(tokens, dw.Delim)
}

// FixedWidthWriter writes records as fixed-width lines.
//
// Tokens are concatenated directly: each codec must pad its tokens to the
// declared field width, or the output will misalign.
type FixedWidthWriter struct {
	tabularWriter
}

// NewFixedWidthWriter returns a FixedWidthWriter over lines.
func NewFixedWidthWriter(lines stream.LineWriter, fields record.FieldSet) *FixedWidthWriter {
	fw := &FixedWidthWriter{}
	fw.init(lines, fields, fw.mergeTokens)
	return fw
}

func (fw *FixedWidthWriter) mergeTokens(tokens []string) string {
	return strings.Join(tokens, "")
}
