// Package model holds the normalized representation of incoming
// receipt and deposit-slip requests.
package model

import (
	"errors"
	"strings"
)

// Default document titles, used when the request carries no title.
const (
	DefaultReceiptTitle = "RECEIPT"
	DefaultDepositTitle = "DEPOSIT SLIP"
)

// ErrMissingOrderNumber marks a structurally malformed top-level request.
var ErrMissingOrderNumber = errors.New("order number is required")

// Item is one line of an order. Prices arrive pre-formatted and are printed
// verbatim. Items are immutable once received; classification is derived
// from the name, never stored.
type Item struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

// Malformed reports whether the item lacks a name or price. A malformed item
// is a per-item failure: it is skipped during rendering, it never fails the
// whole request.
func (it Item) Malformed() bool {
	return strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Price) == ""
}

// Order is the request payload for both receipts and deposit slips.
// Insertion order of Items is semantically meaningful: regular items print
// in original order, and special items keep their original relative order
// within their own category.
type Order struct {
	Title       string `json:"title,omitempty"`
	OrderNumber string `json:"orderNumber"`
	Date        string `json:"date,omitempty"`
	Items       []Item `json:"items,omitempty"`
	Total       string `json:"total,omitempty"`
	FooterText  string `json:"footerText,omitempty"`
}

// Validate checks the identifying fields of the request. Missing items,
// total, date or footer are not errors; each optional field independently
// means "omit the corresponding section".
func (o Order) Validate() error {
	if strings.TrimSpace(o.OrderNumber) == "" {
		return ErrMissingOrderNumber
	}
	return nil
}

// TitleOrDefault returns the order title, falling back to the given
// per-document default.
func (o Order) TitleOrDefault(def string) string {
	if strings.TrimSpace(o.Title) == "" {
		return def
	}
	return o.Title
}
