package glyph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// empty marks a table entry no input line provided. It is written out as 0.
const empty = -1

// Parse reads a glyph description and returns the resulting table.
//
// Every line holding two double quotes describes the next glyph, starting at
// code 0. Between the quotes, hex digits are paired into bytes, most
// significant nybble first, and fill the glyph rows top to bottom; any other
// character (such as the backslash and x of a \x41 literal) is skipped:
//
//	"\x00\x18\x24\x42\x42\x7e\x42\x42\x42\x00\x00\x00",
//
// Lines without two quotes are skipped. Glyphs past the 256th and bytes past
// the 12th row are ignored, and missing entries are left blank. Only read
// errors are reported.
func Parse(r io.Reader) (*Table, error) {
	var p parser
	p.init()

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			p.line(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("glyph: failed to read description: %w", err)
		}
	}
	return p.table(), nil
}

type parser struct {
	data [Count][Height]int16
	next int
}

func (p *parser) init() {
	for i := range p.data {
		for j := range p.data[i] {
			p.data[i][j] = empty
		}
	}
}

// line consumes one description line.
func (p *parser) line(s string) {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return
	}
	s = s[start+1:]
	end := strings.IndexByte(s, '"')
	if end < 0 {
		return
	}
	run := s[:end]

	if p.next < Count {
		row := 0
		val, nyb := 0, 0
		for i := 0; i < len(run) && row < Height; i++ {
			d, ok := hexDigit(run[i])
			if !ok {
				continue
			}
			val = val<<4 | d
			nyb++
			if nyb&1 == 1 {
				continue
			}
			p.data[p.next][row] = int16(val & 0xff)
			row++
		}
	}
	p.next++
}

func (p *parser) table() *Table {
	t := &Table{}
	for code := range p.data {
		for row, v := range p.data[code] {
			if v == empty {
				v = 0
			}
			t[row*Count+code] = byte(v)
		}
	}
	return t
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// Describe writes t in the format read by Parse, one glyph per line.
func Describe(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for code := 0; code < Count; code++ {
		bw.WriteByte('"')
		for row := 0; row < Height; row++ {
			fmt.Fprintf(bw, `\x%02x`, t.Row(byte(code), row))
		}
		fmt.Fprintf(bw, "\", /* 0x%02x */\n", code)
	}
	return bw.Flush()
}
