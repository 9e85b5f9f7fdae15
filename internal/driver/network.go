package driver

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"service_print_receipt/internal/command"
	"service_print_receipt/internal/escpos"
)

const resetDialTimeout = 3 * time.Second

// Network sends encoded sequences to a printer over TCP, the standard
// transport for ESC/POS devices on port 9100. Each job dials a fresh
// connection and writes the whole stream in a single operation so no
// command-level delays reach the device.
type Network struct {
	addr string
	enc  *escpos.Encoder
	log  *zap.Logger
}

func NewNetwork(host string, port int, enc *escpos.Encoder, log *zap.Logger) *Network {
	if log == nil {
		log = zap.NewNop()
	}
	return &Network{
		addr: fmt.Sprintf("%s:%d", host, port),
		enc:  enc,
		log:  log,
	}
}

func (d *Network) Execute(ctx context.Context, seq command.Sequence) error {
	payload, err := d.enc.Encode(seq)
	if err != nil {
		return &Fault{Kind: FaultUnknown, Detail: err.Error(), Err: err}
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", d.addr)
	if err != nil {
		d.log.Error("printer connection failed", zap.String("addr", d.addr), zap.Error(err))
		return classify(err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return classify(err)
		}
	}

	if _, err := conn.Write(payload); err != nil {
		d.log.Error("printer write failed", zap.String("addr", d.addr), zap.Error(err))
		return classify(err)
	}
	return nil
}

// Reset clears the printer buffer with ESC @. It uses its own short dial
// timeout: reset runs after failed jobs too, when the request context may
// already be expired.
func (d *Network) Reset() error {
	conn, err := net.DialTimeout("tcp", d.addr, resetDialTimeout)
	if err != nil {
		return classify(err)
	}
	defer conn.Close()

	if _, err := conn.Write(escpos.ResetBytes()); err != nil {
		return classify(err)
	}
	return nil
}
