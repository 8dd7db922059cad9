// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package dtype

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datalect/serial/record"

	"github.com/pkg/errors"
)

// firstToken returns the stripped first token, or "" if none was selected.
func firstToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.TrimSpace(tokens[0])
}

// encodeValue formats value with verb, substituting def for a nil value. A
// nil value with a nil default encodes as a blank token.
func encodeValue(value, def interface{}, verb string) record.Token {
	if value == nil {
		value = def
	}
	if value == nil {
		return record.Token{}
	}
	return record.Token{Text: fmt.Sprintf(verb, value)}
}

// IntCodec converts tokens to and from integer values.
type IntCodec struct {
	// Format is the fmt verb used for encoding. Defaults to "%d".
	Format string
	// Default is substituted for blank input tokens and nil output values.
	Default interface{}
}

var _ record.Codec = (*IntCodec)(nil)

func (c *IntCodec) verb() string {
	if c.Format == "" {
		return "%d"
	}
	return c.Format
}

// Decode implements record.Codec.
func (c *IntCodec) Decode(tokens []string) (interface{}, error) {
	tok := firstToken(tokens)
	if tok == "" {
		return c.Default, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return nil, errors.Errorf("invalid integer %q", tok)
	}
	return v, nil
}

// Encode implements record.Codec.
func (c *IntCodec) Encode(value interface{}) (record.Token, error) {
	return encodeValue(value, c.Default, c.verb()), nil
}

// FloatCodec converts tokens to and from floating point values.
type FloatCodec struct {
	// Format is the fmt verb used for encoding. Defaults to "%g".
	Format string
	// Default is substituted for blank input tokens and nil output values.
	Default interface{}
}

var _ record.Codec = (*FloatCodec)(nil)

func (c *FloatCodec) verb() string {
	if c.Format == "" {
		return "%g"
	}
	return c.Format
}

// Decode implements record.Codec.
func (c *FloatCodec) Decode(tokens []string) (interface{}, error) {
	tok := firstToken(tokens)
	if tok == "" {
		return c.Default, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, errors.Errorf("invalid float %q", tok)
	}
	return v, nil
}

// Encode implements record.Codec.
func (c *FloatCodec) Encode(value interface{}) (record.Token, error) {
	return encodeValue(value, c.Default, c.verb()), nil
}

// StringCodec converts tokens to and from string values.
type StringCodec struct {
	// Format is the fmt verb used for encoding. Defaults to "%s".
	Format string
	// Quote, if not empty, is stripped from decoded tokens and wrapped
	// around encoded tokens.
	Quote string
	// Default is substituted for blank input tokens and nil output values.
	Default interface{}
}

var _ record.Codec = (*StringCodec)(nil)

func (c *StringCodec) verb() string {
	if c.Format == "" {
		return "%s"
	}
	return c.Format
}

// Decode implements record.Codec.
func (c *StringCodec) Decode(tokens []string) (interface{}, error) {
	tok := firstToken(tokens)
	if c.Quote != "" {
		tok = strings.Trim(tok, c.Quote)
	}
	if tok == "" {
		return c.Default, nil
	}
	return tok, nil
}

// Encode implements record.Codec.
func (c *StringCodec) Encode(value interface{}) (record.Token, error) {
	if value == nil {
		value = c.Default
	}
	if value == nil {
		value = ""
	}
	return record.Token{Text: c.Quote + fmt.Sprintf(c.verb(), value) + c.Quote}, nil
}

// ConstCodec emits a constant value: input tokens are ignored on decode and
// the record value is ignored on encode.
type ConstCodec struct {
	// Value is the constant this codec represents.
	Value interface{}
	// Format is the fmt verb used for encoding. Defaults to "%v".
	Format string
}

var _ record.Codec = (*ConstCodec)(nil)

func (c *ConstCodec) verb() string {
	if c.Format == "" {
		return "%v"
	}
	return c.Format
}

// Decode implements record.Codec.
func (c *ConstCodec) Decode(tokens []string) (interface{}, error) {
	return c.Value, nil
}

// Encode implements record.Codec.
func (c *ConstCodec) Encode(value interface{}) (record.Token, error) {
	return record.Token{Text: fmt.Sprintf(c.verb(), c.Value)}, nil
}

// TimeCodec converts tokens to and from time.Time values using a Go time
// layout.
type TimeCodec struct {
	// Layout is the time layout used for both parsing and formatting, e.g.
	// "2006-01-02 15:04".
	Layout string
	// Default is substituted for blank input tokens and nil output values.
	Default interface{}
}

var _ record.Codec = (*TimeCodec)(nil)

// Decode implements record.Codec.
func (c *TimeCodec) Decode(tokens []string) (interface{}, error) {
	tok := firstToken(tokens)
	if tok == "" {
		return c.Default, nil
	}
	v, err := time.Parse(c.Layout, tok)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid time %q", tok)
	}
	return v, nil
}

// Encode implements record.Codec.
func (c *TimeCodec) Encode(value interface{}) (record.Token, error) {
	if value == nil {
		value = c.Default
	}
	if value == nil {
		return record.Token{}, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return record.Token{}, errors.Errorf("not a time value: %v", value)
	}
	return record.Token{Text: t.Format(c.Layout)}, nil
}
