// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

// Record is the decoded representation of one line of input or output.
//
// Keys are field names; values are either scalars or, for array fields, a
// []Record of nested element records. Ordering is not a property of the
// Record itself: wherever order matters it is taken from the owning
// FieldSet's declaration order.
//
// A Record handed to a Filter is exclusively owned by that filter for the
// duration of the call, and may be mutated in place. Callers must not retain
// an alias across a filter chain expecting the record to stay unmodified.
type Record map[string]interface{}
