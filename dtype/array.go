// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package dtype

import (
	"strings"

	"github.com/datalect/serial/record"

	"github.com/pkg/errors"
)

// ArrayCodec decodes a run of tokens into a []record.Record, one element
// record per stride of tokens.
//
// Fields describes one element: positions are token indices or ranges
// relative to the element start, and the element stride is the sum of the
// field widths. Every element field must have a bounded width.
type ArrayCodec struct {
	// Fields describes one array element.
	Fields record.FieldSet
	// Default is the decoded value for an empty token run and the encoded
	// value for a nil record value. When nil, an empty token run decodes
	// to an empty (non-nil) []record.Record.
	Default interface{}
}

var _ record.Codec = (*ArrayCodec)(nil)

// Decode implements record.Codec.
func (c *ArrayCodec) Decode(tokens []string) (interface{}, error) {
	stride, err := elementStride(c.Fields)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return c.emptyValue(), nil
	}
	if len(tokens)%stride != 0 {
		return nil, errors.Errorf("partial array element: %d tokens with element stride %d", len(tokens), stride)
	}
	values := make([]record.Record, 0, len(tokens)/stride)
	for beg := 0; beg < len(tokens); beg += stride {
		elem := tokens[beg : beg+stride]
		rec := make(record.Record, len(c.Fields))
		for _, f := range c.Fields {
			sel, err := f.Pos.Select(elem)
			if err != nil {
				return nil, &record.DecodeError{Field: f.Name, Err: err}
			}
			v, err := f.Codec.Decode(sel)
			if err != nil {
				return nil, &record.DecodeError{Field: f.Name, Err: err}
			}
			rec[f.Name] = v
		}
		values = append(values, rec)
	}
	return values, nil
}

// Encode implements record.Codec.
func (c *ArrayCodec) Encode(value interface{}) (record.Token, error) {
	return encodeElements(c.Fields, value, c.Default)
}

func (c *ArrayCodec) emptyValue() interface{} {
	if c.Default != nil {
		return c.Default
	}
	return []record.Record{}
}

// FixedArrayCodec decodes a single character-span token into a
// []record.Record, one element record per stride of characters.
//
// Fields describes one element: positions are character ranges relative to
// the element start, and the element stride is the sum of the field widths
// in characters. Encoded element tokens must be pre-padded to their declared
// widths by their codecs.
type FixedArrayCodec struct {
	// Fields describes one array element.
	Fields record.FieldSet
	// Default is the decoded value for an empty span and the encoded value
	// for a nil record value. When nil, an empty span decodes to an empty
	// (non-nil) []record.Record.
	Default interface{}
}

var _ record.Codec = (*FixedArrayCodec)(nil)

// Decode implements record.Codec.
func (c *FixedArrayCodec) Decode(tokens []string) (interface{}, error) {
	stride, err := elementStride(c.Fields)
	if err != nil {
		return nil, err
	}
	span := strings.Join(tokens, "")
	if span == "" {
		return c.emptyValue(), nil
	}
	if len(span)%stride != 0 {
		return nil, errors.Errorf("partial array element: %d characters with element stride %d", len(span), stride)
	}
	values := make([]record.Record, 0, len(span)/stride)
	for beg := 0; beg < len(span); beg += stride {
		elem := span[beg : beg+stride]
		rec := make(record.Record, len(c.Fields))
		for _, f := range c.Fields {
			sub, err := f.Pos.Slice(elem)
			if err != nil {
				return nil, &record.DecodeError{Field: f.Name, Err: err}
			}
			v, err := f.Codec.Decode([]string{sub})
			if err != nil {
				return nil, &record.DecodeError{Field: f.Name, Err: err}
			}
			rec[f.Name] = v
		}
		values = append(values, rec)
	}
	return values, nil
}

// Encode implements record.Codec.
func (c *FixedArrayCodec) Encode(value interface{}) (record.Token, error) {
	return encodeElements(c.Fields, value, c.Default)
}

func (c *FixedArrayCodec) emptyValue() interface{} {
	if c.Default != nil {
		return c.Default
	}
	return []record.Record{}
}

// elementStride sums the declared field widths of one array element.
func elementStride(fields record.FieldSet) (int, error) {
	stride := 0
	for _, f := range fields {
		w := f.Pos.Width()
		if w <= 0 {
			return 0, errors.Errorf("array element field %q must have a bounded width", f.Name)
		}
		stride += w
	}
	if stride == 0 {
		return 0, errors.New("array codec has no element fields")
	}
	return stride, nil
}

// encodeElements encodes an array value as a nested token sequence, one
// token per element field per element, in field order.
func encodeElements(fields record.FieldSet, value, def interface{}) (record.Token, error) {
	if value == nil {
		value = def
	}
	var elems []record.Record
	switch v := value.(type) {
	case nil:
	case []record.Record:
		elems = v
	case []map[string]interface{}:
		elems = make([]record.Record, len(v))
		for i, m := range v {
			elems[i] = record.Record(m)
		}
	default:
		return record.Token{}, errors.Errorf("not an array value: %v", value)
	}

	seq := make([]record.Token, 0, len(elems)*len(fields))
	for _, elem := range elems {
		for _, f := range fields {
			tok, err := f.Codec.Encode(elem[f.Name])
			if err != nil {
				return record.Token{}, &record.DecodeError{Field: f.Name, Err: err}
			}
			seq = append(seq, tok)
		}
	}
	return record.Token{Seq: seq}, nil
}
