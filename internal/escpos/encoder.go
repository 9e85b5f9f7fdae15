// Package escpos lowers abstract command sequences into ESC/POS byte
// streams understood by thermal printers.
package escpos

import (
	"bytes"
	"fmt"
	"strings"

	"service_print_receipt/internal/barcode"
	"service_print_receipt/internal/command"
)

const (
	esc byte = 0x1B
	gs  byte = 0x1D
	nl  byte = 0x0A
)

// DefaultColumns is the character width of an 80mm paper roll.
const DefaultColumns = 42

// Encoder translates a command.Sequence into ESC/POS bytes. It holds only
// the paper geometry and is safe for concurrent use.
type Encoder struct {
	columns int
}

func NewEncoder(columns int) *Encoder {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Encoder{columns: columns}
}

// Encode produces the full byte stream for one sequence, starting with
// printer initialization. Commands are emitted strictly in sequence order.
func (e *Encoder) Encode(seq command.Sequence) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(ResetBytes())

	for _, cmd := range seq {
		switch c := cmd.(type) {
		case command.SetAlign:
			buf.Write([]byte{esc, 'a', byte(c.Align)})
		case command.Bold:
			n := byte(0)
			if c.On {
				n = 1
			}
			buf.Write([]byte{esc, 'E', n})
		case command.TextSize:
			buf.Write([]byte{gs, '!', sizeByte(c.Width, c.Height)})
		case command.TextNormal:
			buf.Write([]byte{gs, '!', 0})
		case command.Println:
			buf.WriteString(transliterate(c.Text))
			buf.WriteByte(nl)
		case command.LeftRight:
			buf.WriteString(transliterate(e.leftRight(c.Left, c.Right)))
			buf.WriteByte(nl)
		case command.DrawLine:
			buf.WriteString(strings.Repeat("-", e.columns))
			buf.WriteByte(nl)
		case command.NewLine:
			buf.WriteByte(nl)
		case command.Cut:
			buf.Write([]byte{nl, nl, nl})
			buf.Write([]byte{gs, 'V', 66, 0})
		case command.Barcode:
			if err := e.encodeBarcode(buf, c); err != nil {
				return nil, err
			}
		case command.QR:
			e.encodeQR(buf, c)
		default:
			return nil, fmt.Errorf("escpos: unknown command %T", cmd)
		}
	}
	return buf.Bytes(), nil
}

// ResetBytes returns ESC @, the printer initialization / buffer clear
// command. Drivers send it after every job.
func ResetBytes() []byte {
	return []byte{esc, '@'}
}

func sizeByte(width, height int) byte {
	width = clamp(width, 1, 8)
	height = clamp(height, 1, 8)
	return byte((width-1)<<4 | (height - 1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// leftRight justifies two strings to opposite margins on one line. An
// overlong pair degrades by trimming the left side; the right side (the
// amount) always prints in full.
func (e *Encoder) leftRight(left, right string) string {
	pad := e.columns - len(left) - len(right)
	if pad < 1 {
		keep := e.columns - len(right) - 1
		if keep < 0 {
			keep = 0
		}
		if keep < len(left) {
			left = left[:keep]
		}
		pad = e.columns - len(left) - len(right)
		if pad < 1 {
			pad = 1
		}
	}
	return left + strings.Repeat(" ", pad) + right
}

// encodeBarcode emits the HRI and geometry option commands followed by the
// symbology command. The check digit is computed here, not by the
// normalizer: GS k function 67 expects all 13 EAN digits.
func (e *Encoder) encodeBarcode(buf *bytes.Buffer, c command.Barcode) error {
	if c.Symbology != command.SymbologyEAN13 {
		return fmt.Errorf("escpos: unsupported symbology %d", c.Symbology)
	}
	check, err := barcode.CheckDigit(c.Data)
	if err != nil {
		return fmt.Errorf("escpos: barcode %q: %w", c.Data, err)
	}
	data := c.Data + string(check)

	buf.Write([]byte{gs, 'H', byte(c.Options.HRI)})
	buf.Write([]byte{gs, 'f', byte(c.Options.Font)})
	buf.Write([]byte{gs, 'w', byte(clamp(c.Options.Width, 2, 6))})
	buf.Write([]byte{gs, 'h', byte(clamp(c.Options.Height, 1, 255))})

	// GS k m=67 (EAN-13, function B) n d1..dn
	buf.Write([]byte{gs, 'k', 67, byte(len(data))})
	buf.WriteString(data)
	buf.WriteByte(nl)
	return nil
}

var transliterations = map[rune]string{
	'ä': "ae", 'Ä': "Ae",
	'ö': "oe", 'Ö': "Oe",
	'ü': "ue", 'Ü': "Ue",
	'ß': "ss",
	'é': "e", 'è': "e", 'ê': "e",
	'á': "a", 'à': "a",
	'€': "EUR",
}

// transliterate maps characters outside the printer's code page onto ASCII.
// Thermal printers with mismatched code pages print garbage for raw umlauts,
// so the stream carries ASCII only.
func transliterate(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r < 128:
			sb.WriteRune(r)
		default:
			if repl, ok := transliterations[r]; ok {
				sb.WriteString(repl)
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
