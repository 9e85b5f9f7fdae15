package render

import (
	"service_print_receipt/internal/barcode"
	"service_print_receipt/internal/command"
)

// RenderBarcode builds a standalone EAN-13 barcode sequence. Unlike the
// decorative blocks it fails fast: an identifier that strips to zero digits
// surfaces barcode.ErrInvalidBarcodeInput to the caller.
func (r *Renderer) RenderBarcode(identifier string) (command.Sequence, error) {
	digits, err := barcode.NormalizeEAN13(identifier)
	if err != nil {
		return nil, err
	}

	b := command.NewBuilder()
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.Barcode{
		Data:      digits,
		Symbology: command.SymbologyEAN13,
		Options:   barcode.DefaultOptions(),
	})
	b.Append(command.Cut{})
	return b.Finish(), nil
}
