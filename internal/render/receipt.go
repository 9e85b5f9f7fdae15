package render

import (
	"go.uber.org/zap"

	"service_print_receipt/internal/barcode"
	"service_print_receipt/internal/command"
	"service_print_receipt/internal/model"
)

// RenderReceipt builds the full itemized receipt sequence: header, regular
// items, deferred special items in three passes, totals, tax note, company
// block, optional footer, QR block, cut. Identical input produces an
// identical sequence.
func (r *Renderer) RenderReceipt(order model.Order) (command.Sequence, *Report, error) {
	if err := order.Validate(); err != nil {
		return nil, nil, err
	}

	b := command.NewBuilder()
	report := &Report{}

	r.header(b, order, model.DefaultReceiptTitle)

	categories := make([]ItemCategory, len(order.Items))
	hasSpecial := false
	for i, it := range order.Items {
		categories[i] = r.classifier.Classify(it)
		if categories[i].Special() {
			hasSpecial = true
		}
	}

	// Regular items first, in original order.
	for i, it := range order.Items {
		if categories[i] != CategoryRegular {
			continue
		}
		if !r.renderable(report, i, it) {
			continue
		}
		b.Append(command.LeftRight{Left: it.Name, Right: it.Price})
		if it.Description != "" {
			b.Append(command.Println{Text: indentDescription(it.Description)})
		}
	}

	// Subtotal only when a special item defers part of the document. The
	// line reuses the final total string verbatim; it is not recomputed.
	if hasSpecial {
		b.Append(command.DrawLine{})
		b.Append(command.Bold{On: true})
		b.Append(command.LeftRight{Left: "SUBTOTAL", Right: order.Total})
		b.Append(command.Bold{On: false})
	}

	// Three explicit passes over the full item list, each separated by a
	// drawn line. Items are filtered, never removed from the source list,
	// so relative order within each category is preserved.
	passes := [][]ItemCategory{
		{CategoryDiscount, CategoryCredit},
		{CategoryPayment},
		{CategoryChange, CategoryTendered},
	}
	for _, pass := range passes {
		r.specialPass(b, report, order.Items, categories, pass)
	}

	b.Append(command.DrawLine{})
	if order.Total != "" {
		b.Append(command.Bold{On: true})
		b.Append(command.TextSize{Width: 1, Height: 2})
		b.Append(command.LeftRight{Left: "TOTAL", Right: order.Total})
		b.Append(command.TextNormal{})
		b.Append(command.Bold{On: false})
	}

	r.complianceBlock(b)

	if order.FooterText != "" {
		b.Append(command.NewLine{})
		b.Append(command.SetAlign{Align: command.AlignCenter})
		b.Append(command.Println{Text: order.FooterText})
	}

	r.qrBlock(b, report, order.OrderNumber)

	b.Append(command.Cut{})
	return b.Finish(), report, nil
}

func (r *Renderer) header(b *command.Builder, order model.Order, defaultTitle string) {
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.Bold{On: true})
	b.Append(command.TextSize{Width: 2, Height: 2})
	b.Append(command.Println{Text: order.TitleOrDefault(defaultTitle)})
	b.Append(command.TextNormal{})
	b.Append(command.Bold{On: false})
	b.Append(command.NewLine{})

	b.Append(command.SetAlign{Align: command.AlignLeft})
	b.Append(command.Println{Text: "Order: " + order.OrderNumber})
	if order.Date != "" {
		b.Append(command.Println{Text: "Date: " + order.Date})
	}
	b.Append(command.DrawLine{})
}

func (r *Renderer) specialPass(b *command.Builder, report *Report, items []model.Item, categories []ItemCategory, pass []ItemCategory) {
	matched := false
	for i, it := range items {
		if !inPass(categories[i], pass) {
			continue
		}
		if !r.renderable(report, i, it) {
			continue
		}
		if !matched {
			b.Append(command.DrawLine{})
			matched = true
		}
		b.Append(command.LeftRight{Left: it.Name, Right: it.Price})
		if it.Description != "" {
			b.Append(command.Println{Text: indentDescription(it.Description)})
		}
	}
}

func inPass(cat ItemCategory, pass []ItemCategory) bool {
	for _, p := range pass {
		if cat == p {
			return true
		}
	}
	return false
}

// complianceBlock appends the fixed tax-disclosure line and company-identity
// block. Both print unconditionally after the total.
func (r *Renderer) complianceBlock(b *command.Builder) {
	b.Append(command.NewLine{})
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.Println{Text: r.taxNote})
	b.Append(command.NewLine{})
	b.Append(command.Println{Text: r.company.Name})
	b.Append(command.Println{Text: r.company.Address})
	b.Append(command.Println{Text: r.company.TaxID})
}

// qrBlock appends the QR decoration. A payload the QR library cannot encode
// is dropped with a report entry; the sequence continues to the cut.
func (r *Renderer) qrBlock(b *command.Builder, report *Report, orderNumber string) {
	if orderNumber == "" {
		return
	}
	payload := QRPayloadPrefix + orderNumber
	if err := barcode.ValidateQR(payload); err != nil {
		r.log.Warn("dropping QR block", zap.Error(err))
		report.DecorationDropped = true
		return
	}
	b.Append(command.NewLine{})
	b.Append(command.SetAlign{Align: command.AlignCenter})
	b.Append(command.QR{Data: payload, Options: barcode.DefaultQROptions()})
}
