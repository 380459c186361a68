package stnlcd

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// SetCursor moves the text cursor. It is not validated: a column past the
// end of a row continues on the next row.
func (d *Dev) SetCursor(row, col int) {
	d.mu.Lock()
	d.cursor = Offset(row, col)
	d.mu.Unlock()
}

// PutChar stores b at the cursor and advances it. Past the last cell, and
// from any position outside the framebuffer, writing resumes at the top left
// corner.
func (d *Dev) PutChar(b byte) {
	d.mu.Lock()
	d.put(b)
	d.mu.Unlock()
}

// PutString writes s from the cursor, stopping at the first zero byte.
func (d *Dev) PutString(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < len(s) && s[i] != 0; i++ {
		d.put(s[i])
	}
}

func (d *Dev) put(b byte) {
	if d.cursor < 0 || d.cursor >= Size {
		d.cursor = 0
	}
	d.fb.WriteChar(d.cursor, b)
	d.cursor++
}

// Cell returns the content of the cell at row, col.
func (d *Dev) Cell(row, col int) (Cell, error) {
	if err := checkCell(row, col); err != nil {
		return Cell{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fb.Cell(row, col), nil
}

// SetCell replaces the content of the cell at row, col.
func (d *Dev) SetCell(row, col int, c Cell) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb.SetCell(row, col, c)
	return nil
}

// DrawBox outlines a w x h cell rectangle whose upper left corner is at row,
// col with box drawing characters.
func (d *Dev) DrawBox(row, col, w, h int) error {
	if w < 2 || h < 2 {
		return fmt.Errorf("stnlcd: box %dx%d is smaller than 2x2", w, h)
	}
	if row < 0 || col < 0 || row+h > Rows || col+w > Cols {
		return fmt.Errorf("stnlcd: box %dx%d at (%d,%d) does not fit the screen", w, h, row, col)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb.DrawBox(row, col, w, h)
	return nil
}

// The methods below implement display.TextDisplay.

// Rows returns the number of text rows.
func (d *Dev) Rows() int { return Rows }

// Cols returns the number of text columns.
func (d *Dev) Cols() int { return Cols }

// MinRow returns the first row number.
func (d *Dev) MinRow() int { return 0 }

// MinCol returns the first column number.
func (d *Dev) MinCol() int { return 0 }

// MoveTo moves the cursor to row, col.
func (d *Dev) MoveTo(row, col int) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	d.SetCursor(row, col)
	return nil
}

// Home moves the cursor to the top left corner.
func (d *Dev) Home() error {
	d.SetCursor(0, 0)
	return nil
}

// Move moves the cursor one cell in dir, wrapping around the screen.
func (d *Dev) Move(dir display.CursorDirection) error {
	var delta int
	switch dir {
	case display.Backward:
		delta = -1
	case display.Forward:
		delta = 1
	case display.Up:
		delta = -Cols
	case display.Down:
		delta = Cols
	default:
		return fmt.Errorf("stnlcd: invalid cursor direction %d: %w", dir, display.ErrInvalidCommand)
	}
	d.mu.Lock()
	d.cursor = ((d.cursor+delta)%Size + Size) % Size
	d.mu.Unlock()
	return nil
}

// Clear blanks the screen and moves the cursor home.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return errHalted
	}
	d.fb.Clear()
	d.cursor = 0
	return nil
}

// Write writes p from the cursor. Every byte is a glyph code; there are no
// control characters.
func (d *Dev) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, errHalted
	}
	for _, b := range p {
		d.put(b)
	}
	return len(p), nil
}

// WriteString writes text from the cursor.
func (d *Dev) WriteString(text string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, errHalted
	}
	for i := 0; i < len(text); i++ {
		d.put(text[i])
	}
	return len(text), nil
}

// Cursor accepts display.CursorOff only: the panel has no hardware cursor.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	for _, m := range modes {
		if m < display.CursorOff || m > display.CursorBlink {
			return fmt.Errorf("stnlcd: invalid cursor mode %d: %w", m, display.ErrInvalidCommand)
		}
		if m != display.CursorOff {
			return fmt.Errorf("stnlcd: cursor mode %d: %w", m, display.ErrNotImplemented)
		}
	}
	return nil
}

// AutoScroll is not supported.
func (d *Dev) AutoScroll(enabled bool) error {
	if !enabled {
		return nil
	}
	return fmt.Errorf("stnlcd: auto scroll: %w", display.ErrNotImplemented)
}

// Display pauses or resumes the refresh. A panel that is not refreshed shows
// nothing; the framebuffer is kept. The refresh resumes with a new frame.
func (d *Dev) Display(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return errHalted
	}
	if d.off == !on {
		return nil
	}
	d.off = !on
	if d.off {
		d.eng.Reset()
	} else {
		d.eng.Sync()
	}
	return nil
}

func checkCell(row, col int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return fmt.Errorf("stnlcd: cell (%d,%d) out of range", row, col)
	}
	return nil
}

var _ display.TextDisplay = &Dev{}
