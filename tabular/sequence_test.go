// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/datalect/serial/record"
	"github.com/datalect/serial/stream"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// closableLines is a LineReader with close capability, so tests can observe
// the sequencer releasing sources.
type closableLines struct {
	lines  stream.LineReader
	closed bool
}

func newClosableLines(text string) *closableLines {
	return &closableLines{lines: stream.NewLineReader(strings.NewReader(text))}
}

func (c *closableLines) ReadLine() (string, error) { return c.lines.ReadLine() }

func (c *closableLines) Close() error {
	c.closed = true
	return nil
}

var _ = Describe("ReaderSequence", func() {
	factory := func(lines stream.LineReader) Reader {
		return NewDelimitedReader(lines, delimitedFields(), ",")
	}

	readAll := func(rs *ReaderSequence) []record.Record {
		var recs []record.Record
		for {
			rec, err := rs.Read()
			if err == io.EOF {
				return recs
			}
			Expect(err).ToNot(HaveOccurred())
			recs = append(recs, rec)
		}
	}

	It("concatenates sources in order", func() {
		rs := NewReaderSequence(factory,
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("1,2,3\n4,5,6\n"))),
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("7,8,9\n"))),
		)
		defer rs.Close()

		recs := readAll(rs)

		Expect(recs).To(HaveLen(3))
		Expect(recs[0]["B"]).To(Equal(3))
		Expect(recs[1]["B"]).To(Equal(6))
		Expect(recs[2]["B"]).To(Equal(9))
	})

	It("returns io.EOF with no sources", func() {
		rs := NewReaderSequence(factory)
		defer rs.Close()

		_, err := rs.Read()
		Expect(err).To(Equal(io.EOF))
	})

	It("opens path sources lazily", func() {
		dir, err := os.MkdirTemp("", "sequence")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		paths := make([]stream.Source, 2)
		for i, text := range []string{"1,2,3\n", "4,5,6\n"} {
			p := filepath.Join(dir, string(rune('a'+i))+".csv")
			Expect(os.WriteFile(p, []byte(text), 0644)).To(Succeed())
			paths[i] = stream.PathSource(p)
		}

		rs := NewReaderSequence(factory, paths...)
		defer rs.Close()

		recs := readAll(rs)

		Expect(recs).To(HaveLen(2))
		Expect(recs[0]["B"]).To(Equal(3))
		Expect(recs[1]["B"]).To(Equal(6))
	})

	It("fails when a path source cannot be opened", func() {
		rs := NewReaderSequence(factory, stream.PathSource("/nonexistent/file.csv"))
		defer rs.Close()

		_, err := rs.Read()
		Expect(err).To(HaveOccurred())
		Expect(err).ToNot(Equal(io.EOF))
	})

	It("applies sequence-level filters across sources", func() {
		rs := NewReaderSequence(factory,
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("1,2,3\n"))),
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("4,5,6\n"))),
		)
		defer rs.Close()
		rs.Filter(record.Blacklist("B", 3))

		recs := readAll(rs)

		Expect(recs).To(HaveLen(1))
		Expect(recs[0]["B"]).To(Equal(6))
	})

	It("terminates the whole sequence at a filter stop", func() {
		rs := NewReaderSequence(factory,
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("1,2,3\n4,5,6\n"))),
			stream.ReaderSource(stream.NewLineReader(strings.NewReader("7,8,9\n"))),
		)
		defer rs.Close()
		rs.Filter(stopAtB(6))

		recs := readAll(rs)

		Expect(recs).To(HaveLen(1))
		Expect(recs[0]["B"]).To(Equal(3))
	})

	It("closes each source as it is exhausted", func() {
		first := newClosableLines("1,2,3\n")
		second := newClosableLines("4,5,6\n")
		rs := NewReaderSequence(factory,
			stream.ReaderSource(first), stream.ReaderSource(second))
		defer rs.Close()

		rec, err := rs.Read()
		Expect(err).ToNot(HaveOccurred())
		Expect(rec["B"]).To(Equal(3))

		// Pulling the next record crosses the source boundary.
		rec, err = rs.Read()
		Expect(err).ToNot(HaveOccurred())
		Expect(rec["B"]).To(Equal(6))
		Expect(first.closed).To(BeTrue())
		Expect(second.closed).To(BeFalse())
	})

	It("closes remaining sources on Close", func() {
		first := newClosableLines("1,2,3\n")
		second := newClosableLines("4,5,6\n")
		rs := NewReaderSequence(factory,
			stream.ReaderSource(first), stream.ReaderSource(second))

		Expect(rs.Close()).To(Succeed())

		Expect(first.closed).To(BeTrue())
		Expect(second.closed).To(BeTrue())
	})

	It("is safe to Close twice", func() {
		rs := NewReaderSequence(factory,
			stream.ReaderSource(newClosableLines("1,2,3\n")))

		Expect(rs.Close()).To(Succeed())
		Expect(rs.Close()).To(Succeed())
	})
})
