package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"service_print_receipt/internal/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultLabels())

	tests := []struct {
		name string
		item model.Item
		want ItemCategory
	}{
		{"plain product", model.Item{Name: "Coffee 500g"}, CategoryRegular},
		{"discount marker anywhere in name", model.Item{Name: "Spring DISCOUNT 10%"}, CategoryDiscount},
		{"discount marker is case-insensitive", model.Item{Name: "discount voucher"}, CategoryDiscount},
		{"credit marker", model.Item{Name: "Store CREDIT"}, CategoryCredit},
		{"payment method exact match", model.Item{Name: "PAYMENT METHOD"}, CategoryPayment},
		{"payment method case-insensitive", model.Item{Name: "payment method"}, CategoryPayment},
		{"payment method trimmed", model.Item{Name: "  PAYMENT METHOD  "}, CategoryPayment},
		{"payment label inside longer name stays regular", model.Item{Name: "PAYMENT METHOD FEE"}, CategoryRegular},
		{"change given", model.Item{Name: "CHANGE"}, CategoryChange},
		{"amount tendered", model.Item{Name: "TENDERED"}, CategoryTendered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.item))
		})
	}
}

func TestClassifyCustomLabels(t *testing.T) {
	c := NewClassifier(Labels{
		DiscountMarker: "Rabatt",
		CreditMarker:   "Gutschein",
		PaymentMethod:  "Zahlungsart",
		ChangeGiven:    "Rueckgeld",
		AmountTendered: "Gegeben",
	})

	assert.Equal(t, CategoryDiscount, c.Classify(model.Item{Name: "Treue-Rabatt"}))
	assert.Equal(t, CategoryCredit, c.Classify(model.Item{Name: "GUTSCHEIN 5 EUR"}))
	assert.Equal(t, CategoryPayment, c.Classify(model.Item{Name: "Zahlungsart"}))
	assert.Equal(t, CategoryChange, c.Classify(model.Item{Name: "rueckgeld"}))
	assert.Equal(t, CategoryRegular, c.Classify(model.Item{Name: "Kaffee"}))
}

func TestSpecialCategories(t *testing.T) {
	assert.False(t, CategoryRegular.Special())
	for _, cat := range []ItemCategory{CategoryDiscount, CategoryCredit, CategoryPayment, CategoryChange, CategoryTendered} {
		assert.True(t, cat.Special())
	}
}
