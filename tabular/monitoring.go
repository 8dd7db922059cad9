// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	readerRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serial_reader_records",
		Help: "Count of records successfully parsed from input lines.",
	})

	readerRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serial_reader_rejected_records",
		Help: "Count of input records dropped by filters.",
	})

	readerDecodeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serial_reader_decode_errors",
		Help: "Count of malformed lines and undecodable tokens.",
	})

	writerRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serial_writer_records",
		Help: "Count of records written to output lines.",
	})

	writerRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serial_writer_rejected_records",
		Help: "Count of output records dropped by filters.",
	})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		// Readers
		readerRecords,
		readerRejected,
		readerDecodeErrors,

		// Writers
		writerRecords,
		writerRejected,
	)
}
