// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

// Token is one encoded unit of output produced by a Codec.
//
// A Token is either a literal (Seq is nil, Text holds the token) or a nested
// sequence of tokens (Seq is non-nil), as produced by array codecs. Writers
// flatten nested sequences inline before joining tokens into a line.
type Token struct {
	// Text is the literal token. Only meaningful when Seq is nil.
	Text string
	// Seq, when non-nil, marks this token as a nested sequence to be
	// spliced in place of the token during flattening.
	Seq []Token
}

// Codec converts between a field's raw tokens and its decoded value.
//
// Decode receives the tokens addressed by the field's Pos: a single-element
// slice for scalar fields, several tokens for delimited array fields, or a
// single character-span token for fixed-width fields. A malformed token is a
// decode error; readers wrap it in a *DecodeError naming the field and
// propagate it without retry.
//
// Encode produces either a literal Token or a nested sequence for
// composite/array values.
type Codec interface {
	Decode(tokens []string) (interface{}, error)
	Encode(value interface{}) (Token, error)
}
