package render

import (
	"errors"

	"go.uber.org/zap"

	"service_print_receipt/internal/barcode"
	"service_print_receipt/internal/command"
	"service_print_receipt/internal/model"
)

// RenderDepositSlip builds the deposit-slip sequence: header, meta, flat
// item list without classification, drawn line, bold deposit total, company
// block and a trailing EAN-13 barcode keyed off the order number.
func (r *Renderer) RenderDepositSlip(order model.Order) (command.Sequence, *Report, error) {
	if err := order.Validate(); err != nil {
		return nil, nil, err
	}

	b := command.NewBuilder()
	report := &Report{}

	r.header(b, order, model.DefaultDepositTitle)

	for i, it := range order.Items {
		if !r.renderable(report, i, it) {
			continue
		}
		b.Append(command.LeftRight{Left: it.Name, Right: it.Price})
		if it.Description != "" {
			b.Append(command.Println{Text: indentDescription(it.Description)})
		}
	}

	b.Append(command.DrawLine{})
	if order.Total != "" {
		b.Append(command.Bold{On: true})
		b.Append(command.LeftRight{Left: "DEPOSIT TOTAL", Right: order.Total})
		b.Append(command.Bold{On: false})
	}

	b.Append(command.NewLine{})
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.Println{Text: r.company.Name})
	b.Append(command.Println{Text: r.company.Address})
	b.Append(command.Println{Text: r.company.TaxID})

	r.barcodeBlock(b, report, order.OrderNumber)

	b.Append(command.Cut{})
	return b.Finish(), report, nil
}

// barcodeBlock appends the decorative barcode. An order number that strips
// to zero digits drops the decoration instead of failing the slip.
func (r *Renderer) barcodeBlock(b *command.Builder, report *Report, orderNumber string) {
	digits, err := barcode.NormalizeEAN13(orderNumber)
	if err != nil {
		if !errors.Is(err, barcode.ErrInvalidBarcodeInput) {
			r.log.Warn("dropping barcode block", zap.Error(err))
		}
		report.DecorationDropped = true
		return
	}
	b.Append(command.NewLine{})
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.Barcode{
		Data:      digits,
		Symbology: command.SymbologyEAN13,
		Options:   barcode.DefaultOptions(),
	})
}
