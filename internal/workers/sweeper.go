package workers

import (
	"context"
	"time"

	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
)

// SweepWorker periodically evicts expired entries from an in-process store,
// such as the memory rate limiter, so idle keys do not accumulate.
type SweepWorker struct {
	name     string
	target   Sweeper
	interval time.Duration

	logger *logger.Logger
}

func NewSweepWorker(name string, target Sweeper, interval time.Duration, log *logger.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepWorker{name: name, target: target, interval: interval, logger: log}
}

// Run implements [Worker].
func (s *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.target.Sweep(); n > 0 {
				s.logger.Debug().Str("sweeper", s.name).Int("evicted", n).Msg("expired entries evicted")
			}
		}
	}
}
