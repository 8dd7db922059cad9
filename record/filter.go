// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

import (
	"github.com/pkg/errors"
)

// ErrStopIteration is returned by a Filter to terminate record flow early.
//
// Readers translate it into io.EOF; writers propagate it to the caller. It
// is a control signal, not a failure.
var ErrStopIteration = errors.New("record: stop iteration")

// Filter transforms one record in a reader or writer pipeline.
//
// A filter may:
//   - return the record unchanged (it may mutate it in place first);
//   - return a replacement record;
//   - return (nil, nil) to reject the record;
//   - return (nil, ErrStopIteration) to terminate iteration;
//   - return any other error to fail the operation.
//
// Each invocation has exclusive access to its record for the duration of the
// call.
type Filter func(Record) (Record, error)

// Chain applies filters to records in registration order.
//
// The zero Chain is ready to use and passes records through unchanged.
type Chain struct {
	filters []Filter
}

// Add appends filters to the chain. Called with no arguments, it clears all
// filters instead.
func (c *Chain) Add(filters ...Filter) {
	if len(filters) == 0 {
		c.filters = nil
		return
	}
	c.filters = append(c.filters, filters...)
}

// Len returns the number of registered filters.
func (c *Chain) Len() int { return len(c.filters) }

// Apply runs rec through every filter in registration order.
//
// The three outcomes are distinct: a surviving (possibly replaced) record; a
// rejection, reported through the boolean; or an error, which is either
// ErrStopIteration or a filter failure. Application stops at the first
// filter that rejects or errors.
func (c *Chain) Apply(rec Record) (Record, bool, error) {
	for _, f := range c.filters {
		out, err := f(rec)
		if err != nil {
			return nil, false, err
		}
		if out == nil {
			return nil, true, nil
		}
		rec = out
	}
	return rec, false, nil
}
