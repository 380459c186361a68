package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("bad sector") }

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestMainImpl(t *testing.T) {
	in := `"\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0a\x0b",` + "\n"
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"go", nil, "var Table = [12 * 256]byte{"},
		{"go custom", []string{"-pkg", "lcd", "-var", "Font"}, "package lcd"},
		{"c", []string{"-format", "c"}, "const unsigned char __at (0x9400) font_tab[12*256] = {"},
		{"c no base", []string{"-format", "c", "-base", ""}, "const unsigned char font_tab[12*256] = {"},
		{"describe", []string{"-describe"}, `"\x00\x00`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := mainImpl(tt.args, strings.NewReader(in), &out); err != nil {
				t.Fatalf("mainImpl() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("output does not contain %q", tt.contains)
			}
		})
	}
}

func TestMainImplExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   io.Reader
		out  io.Writer
		want int
	}{
		{"read failure", nil, failReader{}, &bytes.Buffer{}, 1},
		{"write failure", nil, strings.NewReader(""), failWriter{}, 2},
		{"describe write failure", []string{"-describe"}, strings.NewReader(""), failWriter{}, 2},
		{"malformed input tolerated", nil, strings.NewReader("garbage\n\"zz\"\n\""), &bytes.Buffer{}, 0},
		{"unknown format", []string{"-format", "rust"}, strings.NewReader(""), &bytes.Buffer{}, 3},
		{"extra argument", []string{"file.txt"}, strings.NewReader(""), &bytes.Buffer{}, 3},
		{"invalid package", []string{"-pkg", "my-font"}, strings.NewReader(""), &bytes.Buffer{}, 3},
		{"invalid variable", []string{"-var", "font tab"}, failReader{}, &bytes.Buffer{}, 3},
		{"invalid c variable", []string{"-format", "c", "-var", "9tab"}, strings.NewReader(""), &bytes.Buffer{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mainImpl(tt.args, tt.in, tt.out)
			if got := exitCode(err); got != tt.want {
				t.Errorf("exit code = %d (%v), want %d", got, err, tt.want)
			}
		})
	}
}
