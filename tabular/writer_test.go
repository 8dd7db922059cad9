// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package tabular

import (
	"bytes"
	"strings"

	"github.com/datalect/serial/dtype"
	"github.com/datalect/serial/record"
	"github.com/datalect/serial/stream"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// nestedCodec encodes a token sequence containing a further nested sequence,
// exercising the flattening of arbitrary depth.
type nestedCodec struct{}

func (nestedCodec) Decode([]string) (interface{}, error) { return nil, nil }

func (nestedCodec) Encode(interface{}) (record.Token, error) {
	return record.Token{Seq: []record.Token{
		{Text: "a"},
		{Seq: []record.Token{
			{Text: "b"},
			{Seq: []record.Token{{Text: "c"}}},
		}},
		{Text: "d"},
	}}, nil
}

var _ = Describe("DelimitedWriter", func() {
	var buf *bytes.Buffer
	var w *DelimitedWriter

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		w = NewDelimitedWriter(stream.NewLineWriter(buf), delimitedFields(), ",")
	})

	It("writes one line per record", func() {
		err := w.WriteAll([]record.Record{
			{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3},
			{"A": []record.Record{{"x": 4, "y": 5}}, "B": 6},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("1,2,3\n4,5,6\n"))
	})

	It("round-trips what a reader parsed", func() {
		const text = "1,2,3\n4,5,6\n"
		r := NewDelimitedReader(stream.NewLineReader(strings.NewReader(text)), delimitedFields(), ",")

		recs, err := r.ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(w.WriteAll(recs)).To(Succeed())

		Expect(buf.String()).To(Equal(text))
	})

	It("reports field names in declaration order", func() {
		Expect(w.Fields()).To(Equal([]string{"A", "B"}))
	})

	It("applies filters before encoding", func() {
		w.Filter(doubleB)

		err := w.Write(record.Record{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("1,2,6\n"))
	})

	It("drops rejected records silently", func() {
		w.Filter(record.Blacklist("B", 3))

		err := w.WriteAll([]record.Record{
			{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3},
			{"A": []record.Record{{"x": 4, "y": 5}}, "B": 6},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("4,5,6\n"))
	})

	It("propagates a filter stop to the caller", func() {
		w.Filter(stopAtB(6))

		err := w.WriteAll([]record.Record{
			{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3},
			{"A": []record.Record{{"x": 4, "y": 5}}, "B": 6},
		})

		Expect(err).To(Equal(record.ErrStopIteration))
		Expect(buf.String()).To(Equal("1,2,3\n"))
	})

	It("encodes missing fields through codec defaults", func() {
		fields := record.FieldSet{
			{Name: "stid", Pos: record.Index(0), Codec: &dtype.StringCodec{}},
			{Name: "count", Pos: record.Index(1), Codec: &dtype.IntCodec{Default: -999}},
		}
		w := NewDelimitedWriter(stream.NewLineWriter(buf), fields, ",")

		err := w.Write(record.Record{"stid": "KOUN"})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("KOUN,-999\n"))
	})

	It("names the field that failed to encode", func() {
		err := w.Write(record.Record{"A": "not an array", "B": 3})

		derr, ok := err.(*record.DecodeError)
		Expect(ok).To(BeTrue())
		Expect(derr.Field).To(Equal("A"))
	})

	It("flattens token sequences of any depth", func() {
		fields := record.FieldSet{
			{Name: "deep", Pos: record.RangeFrom(0), Codec: nestedCodec{}},
		}
		w := NewDelimitedWriter(stream.NewLineWriter(buf), fields, " ")

		err := w.Write(record.Record{"deep": nil})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("a b c d\n"))
	})

	It("uses a single space when no delimiter is given", func() {
		w := NewDelimitedWriter(stream.NewLineWriter(buf), delimitedFields(), "")

		err := w.Write(record.Record{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("1 2 3\n"))
	})

	It("honors a custom line terminator", func() {
		w.Endl = "\r\n"

		err := w.Write(record.Record{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("1,2,3\r\n"))
	})
})

var _ = Describe("FixedWidthWriter", func() {
	var buf *bytes.Buffer
	var w *FixedWidthWriter

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		w = NewFixedWidthWriter(stream.NewLineWriter(buf), fixedWidthFields())
	})

	It("concatenates padded tokens", func() {
		err := w.Write(record.Record{"A": []record.Record{{"x": 1, "y": 2}}, "B": 3})

		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal(" 1 2 3\n"))
	})

	It("round-trips what a reader parsed", func() {
		const text = " 1 2 3\n 4 5 6\n"
		r := NewFixedWidthReader(stream.NewLineReader(strings.NewReader(text)), fixedWidthFields())

		recs, err := r.ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(w.WriteAll(recs)).To(Succeed())

		Expect(buf.String()).To(Equal(text))
	})
})
