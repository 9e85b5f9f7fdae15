// Package printer owns the execution discipline for a single printer
// resource. The device is serial and stateful: interleaved jobs corrupt
// output, so at most one sequence is in flight at a time.
package printer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"service_print_receipt/internal/command"
	"service_print_receipt/internal/driver"
)

// Service serializes print jobs against one printer. Building sequences is
// pure and runs in parallel across requests; only the Execute call below
// holds the lock.
type Service struct {
	mu      sync.Mutex
	driver  driver.Driver
	timeout time.Duration
	log     *zap.Logger
}

func NewService(d driver.Driver, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{driver: d, timeout: timeout, log: log}
}

// Print executes one finished sequence. Concurrent callers queue on the
// printer lock rather than interleave. A buffer reset is requested after
// both successful and failed execution, including timeouts; a failed reset
// never masks the execution result.
func (s *Service) Print(ctx context.Context, seq command.Sequence) error {
	jobID := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.driver.Execute(ctx, seq)

	if rerr := s.driver.Reset(); rerr != nil {
		s.log.Warn("printer buffer reset failed",
			zap.String("job_id", jobID),
			zap.Error(rerr))
	}

	if err != nil {
		s.log.Error("print job failed",
			zap.String("job_id", jobID),
			zap.Int("commands", len(seq)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return fmt.Errorf("print job %s: %w", jobID, err)
	}

	s.log.Info("print job completed",
		zap.String("job_id", jobID),
		zap.Int("commands", len(seq)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
