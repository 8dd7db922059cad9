// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package dtype provides value codecs implementing the record.Codec
// contract.
//
// Scalar codecs (IntCodec, FloatCodec, StringCodec, ConstCodec, TimeCodec)
// convert a single token to and from a Go value. A blank input token decodes
// to the codec's default value; a non-blank token that fails to parse is a
// decode error. Encoding formats values with a Go fmt verb; for fixed-width
// layouts the verb must pad the token to the declared field width (e.g.
// "%6d"), or output will misalign.
//
// Array codecs decode a run of tokens into a []record.Record of element
// records. ArrayCodec strides over token sequences (delimited layouts);
// FixedArrayCodec strides over the characters of a single span token
// (fixed-width layouts).
package dtype
