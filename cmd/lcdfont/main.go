// lcdfont compiles a glyph description into a glyph table declaration.
//
// The description is read from stdin, one quoted run of \xNN bytes per glyph
// (see glyph.Parse), and the plane-major table is written to stdout:
//
//	lcdfont -pkg font -var Table < font.txt > table.go
//	lcdfont -format c -base 0x9400 < font.txt > lcd_font.c
//	lcdfont -describe > font.txt
//
// It exits with status 1 when the description cannot be read, 2 when the
// output cannot be written and 3 on invalid flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"periph.io/x/devices/v3/stnlcd/glyph"
)

// Exit statuses.
const (
	exitRead  = 1
	exitWrite = 2
	exitUsage = 3
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func mainImpl(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("lcdfont", flag.ContinueOnError)
	format := fs.String("format", "go", "Output format: go or c")
	pkg := fs.String("pkg", "font", "Go package name")
	name := fs.String("var", "", "Variable name (default: Table in Go, font_tab in C)")
	base := fs.String("base", "0x9400", "C placement address, empty for none")
	describe := fs.Bool("describe", false, "Print the description of the built-in font instead")
	if err := fs.Parse(args); err != nil {
		return &exitError{exitUsage, err}
	}
	if fs.NArg() != 0 {
		return &exitError{exitUsage, errors.New("unexpected arguments")}
	}

	if *describe {
		if err := glyph.Describe(stdout, glyph.Default()); err != nil {
			return &exitError{exitWrite, err}
		}
		return nil
	}

	opts := &glyph.WriteOpts{Package: *pkg, Name: *name, Base: *base}
	switch *format {
	case "go":
		opts.Format = glyph.FormatGo
	case "c":
		opts.Format = glyph.FormatC
	default:
		return &exitError{exitUsage, fmt.Errorf("unknown format %q", *format)}
	}
	if err := opts.Validate(); err != nil {
		return &exitError{exitUsage, err}
	}

	t, err := glyph.Parse(stdin)
	if err != nil {
		return &exitError{exitRead, err}
	}
	if err := glyph.Write(stdout, t, opts); err != nil {
		return &exitError{exitWrite, err}
	}
	return nil
}

func main() {
	log.SetFlags(0)
	if err := mainImpl(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Printf("lcdfont: %v", err)
		var e *exitError
		if errors.As(err, &e) {
			os.Exit(e.code)
		}
		os.Exit(1)
	}
}
