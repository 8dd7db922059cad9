// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package stream defines the line-oriented source and sink contracts
// consumed by the tabular readers and writers, together with stream
// adaptors that layer behavior below the record level.
//
// A LineReader yields lines of text (terminator included) until io.EOF; a
// LineWriter accepts one line per call. Adaptors transform one line or byte
// source into another without any record awareness, and compose freely:
//
//	f, _ := os.Open("data.gz")
//	zl, _ := stream.NewZlibLineReader(f, 0)
//	buf, _ := stream.NewBuffer(zl, 4)
//	r := tabular.NewDelimitedReader(buf, fields, ",")
//
// Buffer adds a bounded rewind window over any line source. ZlibLineReader
// exposes a zlib- or gzip-compressed byte source as lines. Source is the
// tagged path-or-stream input used by multi-stream composition.
package stream
