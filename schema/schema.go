// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package schema builds record.FieldSet values from declarative field
// descriptions, so layouts can live in configuration files instead of code.
//
// A schema document is a list of field declarations:
//
//	fields:
//	  - name: date
//	    index: 0
//	    type: time
//	    layout: "2006-01-02"
//	  - name: samples
//	    range: [1, 5]
//	    type: array
//	    fields:
//	      - {name: depth, index: 0, type: int}
//	      - {name: value, index: 1, type: float}
//	  - name: comment
//	    range: [5]
//	    type: string
//
// Positions are declared with either "index" (one token) or "range" (a
// half-open [beg, end) pair; a single-element range is open-ended). Types
// are int, float, string, const, time and array; array fields declare their
// element fields recursively, with "chars: true" selecting character-strided
// elements for fixed-width layouts.
package schema

import (
	"io"

	"github.com/datalect/serial/dtype"
	"github.com/datalect/serial/record"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type fieldSpec struct {
	Name    string      `yaml:"name" json:"name"`
	Index   *int        `yaml:"index,omitempty" json:"index,omitempty"`
	Range   []int       `yaml:"range,omitempty" json:"range,omitempty"`
	Type    string      `yaml:"type" json:"type"`
	Format  string      `yaml:"format,omitempty" json:"format,omitempty"`
	Quote   string      `yaml:"quote,omitempty" json:"quote,omitempty"`
	Layout  string      `yaml:"layout,omitempty" json:"layout,omitempty"`
	Value   interface{} `yaml:"value,omitempty" json:"value,omitempty"`
	Default interface{} `yaml:"default,omitempty" json:"default,omitempty"`
	Chars   bool        `yaml:"chars,omitempty" json:"chars,omitempty"`
	Fields  []fieldSpec `yaml:"fields,omitempty" json:"fields,omitempty"`
}

type document struct {
	Fields []fieldSpec `yaml:"fields" json:"fields"`
}

// Load parses a YAML schema document into a FieldSet.
func Load(r io.Reader) (record.FieldSet, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing schema")
	}
	return build(doc.Fields)
}

// LoadJSON parses a JSON schema document into a FieldSet.
func LoadJSON(r io.Reader) (record.FieldSet, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing schema")
	}
	return build(doc.Fields)
}

func build(specs []fieldSpec) (record.FieldSet, error) {
	if len(specs) == 0 {
		return nil, errors.New("schema declares no fields")
	}

	fields := make(record.FieldSet, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, errors.New("field is missing a name")
		}

		pos, err := spec.position()
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", spec.Name)
		}
		codec, err := spec.codec()
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", spec.Name)
		}

		fields = append(fields, record.Field{Name: spec.Name, Pos: pos, Codec: codec})
	}
	return fields, nil
}

func (s *fieldSpec) position() (record.Pos, error) {
	switch {
	case s.Index != nil && len(s.Range) > 0:
		return record.Pos{}, errors.New("declares both index and range")
	case s.Index != nil:
		return record.Index(*s.Index), nil
	case len(s.Range) == 1:
		return record.RangeFrom(s.Range[0]), nil
	case len(s.Range) == 2:
		return record.Range(s.Range[0], s.Range[1]), nil
	case len(s.Range) > 2:
		return record.Pos{}, errors.Errorf("range must have 1 or 2 elements, not %d", len(s.Range))
	default:
		return record.Pos{}, errors.New("declares neither index nor range")
	}
}

func (s *fieldSpec) codec() (record.Codec, error) {
	switch s.Type {
	case "int":
		return &dtype.IntCodec{Format: s.Format, Default: s.Default}, nil

	case "float":
		return &dtype.FloatCodec{Format: s.Format, Default: s.Default}, nil

	case "string":
		return &dtype.StringCodec{Format: s.Format, Quote: s.Quote, Default: s.Default}, nil

	case "const":
		if s.Value == nil {
			return nil, errors.New("const field is missing a value")
		}
		return &dtype.ConstCodec{Value: s.Value, Format: s.Format}, nil

	case "time":
		if s.Layout == "" {
			return nil, errors.New("time field is missing a layout")
		}
		return &dtype.TimeCodec{Layout: s.Layout, Default: s.Default}, nil

	case "array":
		elems, err := build(s.Fields)
		if err != nil {
			return nil, errors.Wrap(err, "array element fields")
		}
		if s.Chars {
			return &dtype.FixedArrayCodec{Fields: elems, Default: s.Default}, nil
		}
		return &dtype.ArrayCodec{Fields: elems, Default: s.Default}, nil

	case "":
		return nil, errors.New("is missing a type")

	default:
		return nil, errors.Errorf("unknown field type %q", s.Type)
	}
}
