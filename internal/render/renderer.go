// Package render turns a normalized order into the ordered sequence of
// printer commands that reproduces the receipt or deposit-slip layout.
package render

import (
	"fmt"

	"go.uber.org/zap"

	"service_print_receipt/internal/model"
)

// QRPayloadPrefix is the fixed prefix of the QR payload on receipts.
const QRPayloadPrefix = "RECEIPT:"

// Company identity block printed after the total. The defaults are
// overridable through Options so locale text is not baked into the layout.
type Company struct {
	Name    string `yaml:"name" env:"COMPANY_NAME" env-default:"Beispiel Handels GmbH"`
	Address string `yaml:"address" env:"COMPANY_ADDRESS" env-default:"Hauptstrasse 12, 10115 Berlin"`
	TaxID   string `yaml:"tax_id" env:"COMPANY_TAX_ID" env-default:"USt-IdNr. DE123456789"`
}

func defaultCompany() Company {
	return Company{
		Name:    "Beispiel Handels GmbH",
		Address: "Hauptstrasse 12, 10115 Berlin",
		TaxID:   "USt-IdNr. DE123456789",
	}
}

const defaultTaxNote = "Prices include 19% VAT"

// Options configures a Renderer. Zero values fall back to the built-in
// compliance text and label set.
type Options struct {
	Labels  Labels
	Company Company
	TaxNote string
}

// Renderer builds command sequences for the three rendering operations.
// Building is pure and side-effect-free; a Renderer is safe for concurrent
// use across requests.
type Renderer struct {
	classifier *Classifier
	company    Company
	taxNote    string
	log        *zap.Logger
}

func NewRenderer(opts Options, log *zap.Logger) *Renderer {
	company := opts.Company
	def := defaultCompany()
	if company.Name == "" {
		company.Name = def.Name
	}
	if company.Address == "" {
		company.Address = def.Address
	}
	if company.TaxID == "" {
		company.TaxID = def.TaxID
	}
	taxNote := opts.TaxNote
	if taxNote == "" {
		taxNote = defaultTaxNote
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		classifier: NewClassifier(opts.Labels),
		company:    company,
		taxNote:    taxNote,
		log:        log,
	}
}

// SkippedItem records one malformed line item that was dropped during
// rendering while the rest of the document still rendered.
type SkippedItem struct {
	Index  int
	Reason string
}

// Report carries the locally recovered faults of one rendering: skipped
// items and omitted decorations. It travels alongside the sequence for
// observability; none of its contents abort the request.
type Report struct {
	Skipped           []SkippedItem
	DecorationDropped bool
}

func (r *Report) skip(index int, it model.Item) {
	reason := "missing price"
	if it.Name == "" {
		reason = "missing name"
	}
	r.Skipped = append(r.Skipped, SkippedItem{Index: index, Reason: reason})
}

// renderable guards one item before emission. Malformed items are recorded
// on the report and skipped; remaining items still render.
func (r *Renderer) renderable(report *Report, index int, it model.Item) bool {
	if it.Malformed() {
		r.log.Warn("skipping malformed item",
			zap.Int("index", index),
			zap.String("name", it.Name))
		report.skip(index, it)
		return false
	}
	return true
}

func indentDescription(desc string) string {
	return fmt.Sprintf("  %s", desc)
}
