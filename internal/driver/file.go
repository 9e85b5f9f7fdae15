package driver

import (
	"context"
	"os"

	"service_print_receipt/internal/command"
	"service_print_receipt/internal/escpos"
)

// File writes encoded sequences to a character device node (USB or serial
// printers exposed by the OS) or to a plain file for spooling and tests.
type File struct {
	path string
	enc  *escpos.Encoder
}

func NewFile(path string, enc *escpos.Encoder) *File {
	return &File{path: path, enc: enc}
}

func (d *File) Execute(ctx context.Context, seq command.Sequence) error {
	payload, err := d.enc.Encode(seq)
	if err != nil {
		return &Fault{Kind: FaultUnknown, Detail: err.Error(), Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &Fault{Kind: FaultUnknown, Detail: err.Error(), Err: err}
	}
	return d.write(payload)
}

func (d *File) Reset() error {
	return d.write(escpos.ResetBytes())
}

func (d *File) write(payload []byte) error {
	f, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return classify(err)
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		return classify(err)
	}
	return nil
}
