package driver

import (
	"context"
	"sync"

	"service_print_receipt/internal/command"
)

// Emulator records executed sequences in memory instead of talking to
// hardware. It backs the emulation run mode and the test suites.
type Emulator struct {
	mu       sync.Mutex
	executed []command.Sequence
	resets   int
	failWith error
}

func NewEmulator() *Emulator {
	return &Emulator{}
}

// FailWith makes every subsequent Execute return the given error.
func (d *Emulator) FailWith(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWith = err
}

func (d *Emulator) Execute(ctx context.Context, seq command.Sequence) error {
	if err := ctx.Err(); err != nil {
		return &Fault{Kind: FaultUnknown, Detail: err.Error(), Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}
	stored := make(command.Sequence, len(seq))
	copy(stored, seq)
	d.executed = append(d.executed, stored)
	return nil
}

func (d *Emulator) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
	return nil
}

// Executed returns the sequences executed so far.
func (d *Emulator) Executed() []command.Sequence {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]command.Sequence, len(d.executed))
	copy(out, d.executed)
	return out
}

// Resets returns how many buffer resets were requested.
func (d *Emulator) Resets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}
