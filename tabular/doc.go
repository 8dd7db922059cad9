// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package tabular converts lines of tabular text into records and back.
//
// Tabular data is organized into fields such that each field occupies the
// same position in every line; one line of text corresponds to one complete
// record. Two layouts are supported:
//
//   - Delimited: tokens separated by a delimiter (default: any run of
//     whitespace). There is no escaping; a token containing the delimiter
//     will corrupt output.
//   - Fixed-width: fields delineated by half-open character ranges. Encoded
//     tokens must be pre-padded to their declared widths by their codecs.
//
// Readers pull records from a stream.LineReader; writers push records to a
// stream.LineWriter. Both apply a filter chain to every record, in
// registration order: a filter may pass, replace, mutate, reject, or stop
// (see record.Filter). Readers retry past rejected records iteratively and
// report end of input as io.EOF, so reading is a plain loop:
//
//	for {
//		rec, err := r.Read()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
//
// ReaderSequence concatenates several line sources into one record source.
// ReaderBuffer regroups records (merging or expanding them) on top of any
// reader.
package tabular
