// Package command defines the abstract printer instruction set produced by
// the rendering layer and consumed by the drivers. The variant set is closed:
// every instruction a layout can emit is one of the types below, and the
// driver layer lowers each of them to concrete ESC/POS bytes.
package command

// Alignment selects the horizontal alignment for subsequent text output.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Symbology identifies the barcode encoding requested from the printer.
type Symbology int

const (
	SymbologyEAN13 Symbology = iota
)

// HRIPosition places the human-readable digits relative to the bars.
type HRIPosition int

const (
	HRINone HRIPosition = iota
	HRIAbove
	HRIBelow
	HRIBoth
)

// HRIFont selects the printer font used for the human-readable digits.
type HRIFont int

const (
	HRIFontA HRIFont = iota
	HRIFontB
)

// QRCorrection is the QR error-correction level.
type QRCorrection int

const (
	QRCorrectionL QRCorrection = iota
	QRCorrectionM
	QRCorrectionQ
	QRCorrectionH
)

// BarcodeOptions carries the fixed rendering parameters for a barcode block.
type BarcodeOptions struct {
	HRI    HRIPosition
	Font   HRIFont
	Width  int // module width multiplier
	Height int // bar height in dots
}

// QROptions carries the fixed rendering parameters for a QR block.
type QROptions struct {
	Model      int
	CellSize   int
	Correction QRCorrection
}

// Command is a single abstract printer instruction.
type Command interface {
	isCommand()
}

// SetAlign changes the alignment for subsequent output.
type SetAlign struct {
	Align Alignment
}

// Bold switches emphasis on or off.
type Bold struct {
	On bool
}

// TextSize sets the character width and height multipliers (1..8).
type TextSize struct {
	Width  int
	Height int
}

// TextNormal restores the default character size.
type TextNormal struct{}

// Println prints one line of text followed by a line feed.
type Println struct {
	Text string
}

// LeftRight prints two strings justified to opposite margins on one line.
// Used for name/price and label/total pairs.
type LeftRight struct {
	Left  string
	Right string
}

// DrawLine prints a full-width separator line.
type DrawLine struct{}

// NewLine feeds one empty line.
type NewLine struct{}

// Cut feeds and cuts the paper.
type Cut struct{}

// Barcode prints a barcode block.
type Barcode struct {
	Data      string
	Symbology Symbology
	Options   BarcodeOptions
}

// QR prints a QR code block.
type QR struct {
	Data    string
	Options QROptions
}

func (SetAlign) isCommand()   {}
func (Bold) isCommand()       {}
func (TextSize) isCommand()   {}
func (TextNormal) isCommand() {}
func (Println) isCommand()    {}
func (LeftRight) isCommand()  {}
func (DrawLine) isCommand()   {}
func (NewLine) isCommand()    {}
func (Cut) isCommand()        {}
func (Barcode) isCommand()    {}
func (QR) isCommand()         {}

// Sequence is an ordered, immutable list of commands. It is the sole output
// of the rendering layer: created per request, executed exactly once by the
// printer service, then discarded.
type Sequence []Command
