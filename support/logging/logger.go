// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package logging defines the logger capability accepted by components that
// orchestrate multiple resources, such as the multi-stream reader sequence.
package logging

// L accepts formatted logging calls.
//
// L matches the formatted surface of zap's SugaredLogger, but is generic
// enough that any logger can satisfy it.
type L interface {
	// Errorf emits an error-level log.
	Errorf(fmt string, args ...interface{})
	// Warnf emits a warning-level log.
	Warnf(fmt string, args ...interface{})
	// Infof emits an info-level log.
	Infof(fmt string, args ...interface{})
	// Debugf emits a debug-level log.
	Debugf(fmt string, args ...interface{})
}

// Nop is an L instance that does nothing.
var Nop L = nopLogger{}

// Must ensures that a valid L is available: l if it is not nil, Nop
// otherwise.
func Must(l L) L {
	if l != nil {
		return l
	}
	return Nop
}

type nopLogger struct{}

func (nopLogger) Errorf(fmt string, args ...interface{}) {}
func (nopLogger) Warnf(fmt string, args ...interface{})  {}
func (nopLogger) Infof(fmt string, args ...interface{})  {}
func (nopLogger) Debugf(fmt string, args ...interface{}) {}
