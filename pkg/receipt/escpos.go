package receipt

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Text alignment
const (
	alignLeft   = 0
	alignCenter = 1
)

// document builds an ESC/POS byte stream for thermal printers used at the
// school fee counter.
type document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
}

func newDocument(charWidth int) *document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &document{width: charWidth}
	d.buf.Write([]byte{esc, '@'})
	return d
}

func (d *document) feedLines(n int) *document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

func (d *document) setAlign(align int) *document {
	d.buf.Write([]byte{esc, 'a', byte(align)})
	return d
}

func (d *document) setBold(on bool) *document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *document) text(s string) *document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *document) textF(format string, args ...interface{}) *document {
	return d.text(fmt.Sprintf(format, args...))
}

func (d *document) separator() *document {
	return d.text(strings.Repeat("-", d.width))
}

// keyValue prints a left-aligned key and right-aligned value on one line.
func (d *document) keyValue(key, value string) *document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(lf)
	return d
}

func (d *document) cut() *document {
	d.buf.Write([]byte{gs, 'V', 0x00})
	return d
}

func (d *document) bytes() []byte {
	return d.buf.Bytes()
}
