// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package stream

import (
	"io"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// sliceLines is a LineReader over a fixed set of lines, counting fetches so
// tests can tell replay apart from fresh reads.
type sliceLines struct {
	lines []string
	reads int
}

func (s *sliceLines) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	s.reads++
	return line, nil
}

var _ = Describe("Buffer", func() {
	It("replays rewound lines before fetching fresh ones", func() {
		src := &sliceLines{lines: []string{"l1\n", "l2\n", "l3\n", "l4\n", "l5\n"}}
		b, err := NewBuffer(src, 2)
		Expect(err).ToNot(HaveOccurred())

		line, _ := b.ReadLine()
		Expect(line).To(Equal("l1\n"))
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l2\n"))

		b.Rewind(2)
		fetched := src.reads

		line, _ = b.ReadLine()
		Expect(line).To(Equal("l1\n"))
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l2\n"))
		Expect(src.reads).To(Equal(fetched))

		line, _ = b.ReadLine()
		Expect(line).To(Equal("l3\n"))
	})

	It("retains only the last capacity lines", func() {
		src := &sliceLines{lines: []string{"l1\n", "l2\n", "l3\n", "l4\n", "l5\n"}}
		b, err := NewBuffer(src, 3)
		Expect(err).ToNot(HaveOccurred())

		// Drain the look-ahead window, then fetch one fresh line; the
		// window slides to l2..l4.
		for i := 0; i < 4; i++ {
			_, err := b.ReadLine()
			Expect(err).ToNot(HaveOccurred())
		}

		b.Rewind(2)

		line, _ := b.ReadLine()
		Expect(line).To(Equal("l3\n"))
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l4\n"))
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l5\n"))
	})

	It("clamps a rewind past the window start", func() {
		src := &sliceLines{lines: []string{"l1\n", "l2\n"}}
		b, err := NewBuffer(src, 2)
		Expect(err).ToNot(HaveOccurred())

		line, _ := b.ReadLine()
		Expect(line).To(Equal("l1\n"))

		b.Rewind(100)

		line, _ = b.ReadLine()
		Expect(line).To(Equal("l1\n"))
	})

	It("accepts a source shorter than its capacity", func() {
		src := &sliceLines{lines: []string{"l1\n", "l2\n"}}
		b, err := NewBuffer(src, 5)
		Expect(err).ToNot(HaveOccurred())

		line, _ := b.ReadLine()
		Expect(line).To(Equal("l1\n"))
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l2\n"))

		_, err = b.ReadLine()
		Expect(err).To(Equal(io.EOF))

		b.Rewind(2)
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l1\n"))
	})

	It("returns io.EOF for an empty source", func() {
		b, err := NewBuffer(&sliceLines{}, 2)
		Expect(err).ToNot(HaveOccurred())

		_, err = b.ReadLine()
		Expect(err).To(Equal(io.EOF))
	})

	It("treats a capacity below one as one", func() {
		src := &sliceLines{lines: []string{"l1\n", "l2\n"}}
		b, err := NewBuffer(src, 0)
		Expect(err).ToNot(HaveOccurred())

		line, _ := b.ReadLine()
		Expect(line).To(Equal("l1\n"))

		b.Rewind(1)
		line, _ = b.ReadLine()
		Expect(line).To(Equal("l1\n"))
	})
})
