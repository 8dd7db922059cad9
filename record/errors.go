// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

import (
	"fmt"
)

// DecodeError reports that a field's tokens could not be parsed, or that a
// line's structure did not match the declared field positions.
//
// Decode errors are fatal: they propagate to the caller immediately with no
// partial-record recovery.
type DecodeError struct {
	// Field is the name of the field that failed to decode.
	Field string
	// Err is the underlying codec or structural error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding field %q: %v", e.Field, e.Err)
}

// Unwrap supports errors.Is / errors.As chains.
func (e *DecodeError) Unwrap() error { return e.Err }

// Cause supports github.com/pkg/errors cause chains.
func (e *DecodeError) Cause() error { return e.Err }
