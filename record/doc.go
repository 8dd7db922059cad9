// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package record defines the data model shared by all serial readers and
// writers.
//
// A Record is the decoded form of one line of tabular text. Its layout is
// described by a FieldSet, an ordered sequence of Fields. Each Field names
// one record attribute, locates its raw tokens within a line through a Pos,
// and carries a Codec that converts between tokens and values. FieldSet
// order is authoritative: it determines on-disk token order when writing and
// the declared field names reported by readers and writers.
//
// Records flow through filter chains before they are surfaced to clients or
// emitted to an output stream. A Filter may pass a record through, replace
// it, mutate it in place, reject it, or terminate iteration; see Filter for
// the exact contract.
package record
