// Package driver holds the printer transports. Every driver consumes a
// finished command sequence, sends it to the physical or virtual device and
// clears the device buffer on request.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"syscall"

	"service_print_receipt/internal/command"
)

// Driver executes one command sequence against a printer. Execution is the
// sole suspension point of a print job: it is I/O-bound, may block and is
// cancelled through the context. Callers serialize Execute per printer.
type Driver interface {
	Execute(ctx context.Context, seq command.Sequence) error
	Reset() error
}

// FaultKind classifies executor failures.
type FaultKind int

const (
	FaultUnknown FaultKind = iota
	FaultConnectionRefused
	FaultPermissionDenied
)

func (k FaultKind) String() string {
	switch k {
	case FaultConnectionRefused:
		return "connection refused"
	case FaultPermissionDenied:
		return "permission denied"
	default:
		return "unknown"
	}
}

// Fault is the error type surfaced by every driver.
type Fault struct {
	Kind   FaultKind
	Detail string
	Err    error
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("printer fault (%s): %s", f.Kind, f.Detail)
	}
	return fmt.Sprintf("printer fault (%s)", f.Kind)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// classify maps transport errors onto the fault taxonomy.
func classify(err error) *Fault {
	kind := FaultUnknown
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = FaultConnectionRefused
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM), errors.Is(err, fs.ErrPermission), os.IsPermission(err):
		kind = FaultPermissionDenied
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			kind = FaultConnectionRefused
		}
	}
	return &Fault{Kind: kind, Detail: err.Error(), Err: err}
}
