package render

import (
	"strings"

	"service_print_receipt/internal/model"
)

// ItemCategory tags a line item during classification. Anything that is not
// a purchased product (discounts, credits, payment method, change, amount
// tendered) is a special item and is re-extracted after the regular block.
type ItemCategory int

const (
	CategoryRegular ItemCategory = iota
	CategoryDiscount
	CategoryCredit
	CategoryPayment
	CategoryChange
	CategoryTendered
)

// Special reports whether the category belongs to the deferred block.
func (c ItemCategory) Special() bool {
	return c != CategoryRegular
}

// Labels holds the locale-specific names the classifier matches on, so the
// layout algorithm never touches literal label text.
//
// Matching rules are fixed: DiscountMarker and CreditMarker match by
// case-insensitive substring; PaymentMethod, ChangeGiven and AmountTendered
// match by case-insensitive equality on the whitespace-trimmed name.
type Labels struct {
	DiscountMarker string `yaml:"discount_marker" env:"LABEL_DISCOUNT" env-default:"DISCOUNT"`
	CreditMarker   string `yaml:"credit_marker" env:"LABEL_CREDIT" env-default:"CREDIT"`
	PaymentMethod  string `yaml:"payment_method" env:"LABEL_PAYMENT" env-default:"PAYMENT METHOD"`
	ChangeGiven    string `yaml:"change_given" env:"LABEL_CHANGE" env-default:"CHANGE"`
	AmountTendered string `yaml:"amount_tendered" env:"LABEL_TENDERED" env-default:"TENDERED"`
}

// DefaultLabels returns the built-in label set.
func DefaultLabels() Labels {
	return Labels{
		DiscountMarker: "DISCOUNT",
		CreditMarker:   "CREDIT",
		PaymentMethod:  "PAYMENT METHOD",
		ChangeGiven:    "CHANGE",
		AmountTendered: "TENDERED",
	}
}

// Classifier partitions items into regular and special categories. It never
// reorders or mutates items; callers iterate the source list and filter.
type Classifier struct {
	labels Labels
}

func NewClassifier(labels Labels) *Classifier {
	def := DefaultLabels()
	if labels.DiscountMarker == "" {
		labels.DiscountMarker = def.DiscountMarker
	}
	if labels.CreditMarker == "" {
		labels.CreditMarker = def.CreditMarker
	}
	if labels.PaymentMethod == "" {
		labels.PaymentMethod = def.PaymentMethod
	}
	if labels.ChangeGiven == "" {
		labels.ChangeGiven = def.ChangeGiven
	}
	if labels.AmountTendered == "" {
		labels.AmountTendered = def.AmountTendered
	}
	return &Classifier{labels: labels}
}

// Classify derives the category of one item from its name.
func (c *Classifier) Classify(it model.Item) ItemCategory {
	name := strings.TrimSpace(it.Name)
	upper := strings.ToUpper(name)

	switch {
	case strings.Contains(upper, strings.ToUpper(c.labels.DiscountMarker)):
		return CategoryDiscount
	case strings.Contains(upper, strings.ToUpper(c.labels.CreditMarker)):
		return CategoryCredit
	case strings.EqualFold(name, c.labels.PaymentMethod):
		return CategoryPayment
	case strings.EqualFold(name, c.labels.ChangeGiven):
		return CategoryChange
	case strings.EqualFold(name, c.labels.AmountTendered):
		return CategoryTendered
	}
	return CategoryRegular
}
