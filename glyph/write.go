package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
)

// Format selects the language of the declaration written by Write.
type Format int

const (
	// FormatGo writes a Go source file declaring a [Size]byte variable.
	FormatGo Format = iota
	// FormatC writes a C array placed at a fixed address, for firmware
	// builds that map the table into flash.
	FormatC
)

// WriteOpts configures Write. The zero value writes Go source for package
// "font" declaring variable "Table".
type WriteOpts struct {
	Format  Format
	Package string // Go package name
	Name    string // Variable name
	Base    string // C placement address, e.g. "0x9400"
}

// ErrInvalidOpts is returned by Validate and Write for options that cannot
// produce a valid declaration.
var ErrInvalidOpts = errors.New("glyph: invalid write options")

// Validate reports whether opts selects a known format and names that are
// identifiers in that format's language.
func (o *WriteOpts) Validate() error {
	switch o.Format {
	case FormatGo:
		if o.Package != "" && !token.IsIdentifier(o.Package) {
			return fmt.Errorf("%w: package name %q", ErrInvalidOpts, o.Package)
		}
		if o.Name != "" && !token.IsIdentifier(o.Name) {
			return fmt.Errorf("%w: variable name %q", ErrInvalidOpts, o.Name)
		}
	case FormatC:
		if o.Name != "" && !isCIdent(o.Name) {
			return fmt.Errorf("%w: variable name %q", ErrInvalidOpts, o.Name)
		}
	default:
		return fmt.Errorf("%w: unknown format %d", ErrInvalidOpts, o.Format)
	}
	return nil
}

func isCIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

// Write writes t as a plane-major byte array declaration, one comment per
// pixel row and 16 values per line.
func Write(w io.Writer, t *Table, opts *WriteOpts) error {
	if opts == nil {
		opts = &WriteOpts{}
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	var src []byte
	if opts.Format == FormatC {
		src = cSource(t, opts)
	} else {
		var err error
		if src, err = goSource(t, opts); err != nil {
			return err
		}
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("glyph: failed to write table: %w", err)
	}
	return nil
}

func goSource(t *Table, opts *WriteOpts) ([]byte, error) {
	pkg, name := opts.Package, opts.Name
	if pkg == "" {
		pkg = "font"
	}
	if name == "" {
		name = "Table"
	}
	var b bytes.Buffer
	b.WriteString("// Code generated by lcdfont; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "// %s is a plane-major glyph table: %d rows of %d glyphs.\n", name, Height, Count)
	fmt.Fprintf(&b, "var %s = [%d * %d]byte{\n", name, Height, Count)
	planes(&b, t, "// pixel row %d\n")
	b.WriteString("}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, errors.New("glyph: invalid package or variable name")
	}
	return src, nil
}

func cSource(t *Table, opts *WriteOpts) []byte {
	name := opts.Name
	if name == "" {
		name = "font_tab"
	}
	var b bytes.Buffer
	if opts.Base != "" {
		fmt.Fprintf(&b, "const unsigned char __at (%s) %s[%d*%d] = {\n", opts.Base, name, Height, Count)
	} else {
		fmt.Fprintf(&b, "const unsigned char %s[%d*%d] = {\n", name, Height, Count)
	}
	planes(&b, t, "/* pixel row %d */\n")
	b.WriteString("};\n")
	return b.Bytes()
}

func planes(b *bytes.Buffer, t *Table, header string) {
	for row := 0; row < Height; row++ {
		fmt.Fprintf(b, header, row)
		for code := 0; code < Count; code++ {
			fmt.Fprintf(b, "0x%02x, ", t.Row(byte(code), row))
			if code&15 == 15 {
				b.WriteString("\n")
			}
		}
	}
}
