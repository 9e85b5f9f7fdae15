package escpos

import (
	"bytes"
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"service_print_receipt/internal/command"
)

// encodeQR rasterizes the payload with the QR library and emits it as a
// GS v 0 bitmap, which modern thermal printers handle more reliably than
// the native GS ( k symbol commands. The payload was validated when the
// sequence was built; if encoding still fails, a placeholder line prints so
// the rest of the document is unaffected.
func (e *Encoder) encodeQR(buf *bytes.Buffer, c command.QR) {
	qr, err := qrcode.New(c.Data, recoveryLevel(c.Options.Correction))
	if err != nil {
		buf.WriteString("[QR UNAVAILABLE]")
		buf.WriteByte(nl)
		return
	}

	size := clamp(c.Options.CellSize, 1, 16) * 32
	writeRaster(buf, qr.Image(size))
}

func recoveryLevel(c command.QRCorrection) qrcode.RecoveryLevel {
	switch c {
	case command.QRCorrectionL:
		return qrcode.Low
	case command.QRCorrectionQ:
		return qrcode.High
	case command.QRCorrectionH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// writeRaster converts a monochrome-ish image into the GS v 0 raster
// format: 1 bit per pixel, 8 pixels per byte, dark pixels print black.
func writeRaster(buf *bytes.Buffer, img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	widthBytes := (width + 7) / 8

	buf.WriteByte(nl)
	buf.Write([]byte{
		gs, 'v', '0', 0,
		byte(widthBytes % 256), byte(widthBytes / 256),
		byte(height % 256), byte(height / 256),
	})

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x += 8 {
			var b byte
			for bit := 0; bit < 8; bit++ {
				px := x + bit
				if px >= bounds.Max.X {
					break
				}
				r, g, bl, _ := img.At(px, y).RGBA()
				gray := (299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000
				if gray < 128 {
					b |= 1 << uint(7-bit)
				}
			}
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(nl)
}
