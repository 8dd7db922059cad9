// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// CompressionFlag is a pflag.Value implementation that stores a Compression
// value.
type CompressionFlag Compression

var _ pflag.Value = (*CompressionFlag)(nil)

func (cf *CompressionFlag) String() string { return Compression(*cf).String() }

// Set implements pflag.Value.
func (cf *CompressionFlag) Set(v string) error {
	if cv, ok := compressionValues[strings.ToUpper(v)]; ok {
		*cf = CompressionFlag(cv)
		return nil
	}
	return errors.Errorf("unknown compression type: %q", v)
}

// Type implements pflag.Value.
func (cf *CompressionFlag) Type() string { return "stream.Compression" }

// Value returns the compression value held by this flag.
func (cf CompressionFlag) Value() Compression { return Compression(cf) }

// CompressionFlagValues returns the list of possible values for a
// CompressionFlag.
func CompressionFlagValues() string {
	names := make([]string, 0, len(compressionNames))
	for _, name := range compressionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
