// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

import (
	"github.com/pkg/errors"
)

// Pos locates a field's raw tokens within a line.
//
// For delimited layouts a Pos addresses token indices; for fixed-width
// layouts it addresses character positions. Both forms are half-open
// [Start, End) ranges. An End < 0 marks an open-ended range that extends to
// the end of the token list or line.
type Pos struct {
	Start int
	End   int
}

// Index returns a Pos selecting the single token at index i.
func Index(i int) Pos { return Pos{Start: i, End: i + 1} }

// Range returns a Pos selecting the half-open range [beg, end).
func Range(beg, end int) Pos { return Pos{Start: beg, End: end} }

// RangeFrom returns an open-ended Pos selecting everything from beg onward.
func RangeFrom(beg int) Pos { return Pos{Start: beg, End: -1} }

// Width returns the number of positions this Pos spans, or -1 if the range
// is open-ended.
func (p Pos) Width() int {
	if p.End < 0 {
		return -1
	}
	return p.End - p.Start
}

// Select returns the tokens addressed by p.
//
// A bounded Pos that extends past the available tokens is a structural
// error: the line did not carry the declared token count. An open-ended Pos
// accepts short (even empty) input.
func (p Pos) Select(tokens []string) ([]string, error) {
	if p.Start < 0 {
		return nil, errors.Errorf("negative token position %d", p.Start)
	}
	end := p.End
	if end < 0 {
		if p.Start > len(tokens) {
			return nil, errors.Errorf("token position %d exceeds token count %d", p.Start, len(tokens))
		}
		return tokens[p.Start:], nil
	}
	if end < p.Start {
		return nil, errors.Errorf("invalid token range [%d, %d)", p.Start, end)
	}
	if end > len(tokens) {
		return nil, errors.Errorf("token range [%d, %d) exceeds token count %d", p.Start, end, len(tokens))
	}
	return tokens[p.Start:end], nil
}

// Slice returns the substring of line addressed by p.
//
// Positions are byte offsets; the fixed-width formats this package targets
// are single-byte encoded. Wider input encodings should be transcoded ahead
// of the reader (see the stream package's charset adaptor).
func (p Pos) Slice(line string) (string, error) {
	if p.Start < 0 {
		return "", errors.Errorf("negative character position %d", p.Start)
	}
	end := p.End
	if end < 0 {
		if p.Start > len(line) {
			return "", errors.Errorf("character position %d exceeds line length %d", p.Start, len(line))
		}
		return line[p.Start:], nil
	}
	if end < p.Start {
		return "", errors.Errorf("invalid character range [%d, %d)", p.Start, end)
	}
	if end > len(line) {
		return "", errors.Errorf("character range [%d, %d) exceeds line length %d", p.Start, end, len(line))
	}
	return line[p.Start:end], nil
}

// Field describes one record attribute: its name, the position of its raw
// tokens within a line, and the codec that converts between tokens and
// values. Fields are immutable once constructed.
type Field struct {
	Name  string
	Pos   Pos
	Codec Codec
}

// FieldSet is an ordered sequence of Fields defining a schema. Order is
// stable for the lifetime of any reader or writer holding the set.
type FieldSet []Field

// Names returns the field names in declaration order.
func (fs FieldSet) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}
