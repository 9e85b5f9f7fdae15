// Package barcode normalizes numeric identifiers for the EAN-13 symbology
// and validates QR payloads before a QR block is added to a sequence.
package barcode

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"service_print_receipt/internal/command"
)

// DataDigits is the number of significant EAN-13 digits the normalizer
// produces. The 13th digit is the check digit, computed by the encoding step.
const DataDigits = 12

// ErrInvalidBarcodeInput is reported when an input strips to zero digits.
// Callers that only decorate a receipt swallow it and omit the barcode;
// the standalone barcode operation surfaces it as a client error.
var ErrInvalidBarcodeInput = errors.New("barcode input contains no digits")

// NormalizeEAN13 cleans an arbitrary input string into the 12 significant
// digits of an EAN-13 barcode. The function is total: it is defined for
// every input and never panics.
//
// Rules, in order:
//   - every non-digit character is stripped;
//   - exactly 13 digits: the first 12 are kept, the 13th is treated as a
//     pre-existing check digit and discarded;
//   - fewer than 12 digits: left-padded with '0' to 12;
//   - more than 12 digits: the first 12 are kept. This is the one canonical
//     truncation policy, applied uniformly.
//
// Zero digits after stripping yields ErrInvalidBarcodeInput.
func NormalizeEAN13(input string) (string, error) {
	var sb strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()

	switch {
	case len(digits) == 0:
		return "", ErrInvalidBarcodeInput
	case len(digits) == 13:
		return digits[:DataDigits], nil
	case len(digits) < DataDigits:
		return strings.Repeat("0", DataDigits-len(digits)) + digits, nil
	case len(digits) > DataDigits:
		return digits[:DataDigits], nil
	}
	return digits, nil
}

// CheckDigit computes the EAN-13 check digit for 12 data digits.
func CheckDigit(data string) (byte, error) {
	if len(data) != DataDigits {
		return 0, errors.New("barcode: check digit needs exactly 12 digits")
	}
	sum := 0
	for i, r := range data {
		if r < '0' || r > '9' {
			return 0, errors.New("barcode: check digit input is not numeric")
		}
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10), nil
}

// DefaultOptions returns the fixed rendering options attached to every
// normalized barcode: HRI below the bars in font A, module width 2,
// bar height 80 dots.
func DefaultOptions() command.BarcodeOptions {
	return command.BarcodeOptions{
		HRI:    command.HRIBelow,
		Font:   command.HRIFontA,
		Width:  2,
		Height: 80,
	}
}

// DefaultQROptions returns the fixed rendering options for receipt QR
// blocks: model 2, cell size 6, medium error correction.
func DefaultQROptions() command.QROptions {
	return command.QROptions{
		Model:      2,
		CellSize:   6,
		Correction: command.QRCorrectionM,
	}
}

// ValidateQR checks that a payload is encodable as a QR code. The rendering
// layer calls this before appending a QR block so that an unencodable payload
// degrades to an omitted decoration instead of a failed sequence.
func ValidateQR(data string) error {
	if data == "" {
		return errors.New("barcode: empty QR payload")
	}
	if _, err := qrcode.New(data, qrcode.Medium); err != nil {
		return err
	}
	return nil
}
