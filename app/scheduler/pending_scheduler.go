// Package scheduler
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/utils"
)

// PendingScheduler periodically drains the deferred-message queue so
// messages enqueued outside a company's contact window go out as soon as
// the window opens.
type PendingScheduler struct {
	pendingFlow businessflow.PendingQueueFlow
	logger      *log.Logger
	interval    time.Duration

	logFile *os.File
}

func NewPendingScheduler(pendingFlow businessflow.PendingQueueFlow, interval time.Duration) *PendingScheduler {
	if interval <= 0 {
		interval = utils.DefaultDrainInterval
	}

	s := &PendingScheduler{
		pendingFlow: pendingFlow,
		interval:    interval,
	}

	// Initialize scheduler-specific logger (to stdout and persistent file)
	if err := s.initSchedulerLogger(); err != nil {
		// Fallback to default stdout logger if file logger init fails
		s.logger = log.Default()
		s.logger.Printf("scheduler: failed to initialize file logger: %v", err)
	}

	return s
}

// initSchedulerLogger configures a logger that writes to both stdout and a persistent file under data/ (or /data)
func (s *PendingScheduler) initSchedulerLogger() error {
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		logPath := filepath.Join(dir, "scheduler.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			continue
		}
		s.logFile = f
		mw := io.MultiWriter(os.Stdout, f)
		// log.Logger is goroutine-safe; include timestamps with microseconds and UTC
		s.logger = log.New(mw, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create scheduler log file in any candidate directory")
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *PendingScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.close()
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *PendingScheduler) runOnce(ctx context.Context) {
	started := time.Now()
	if err := s.pendingFlow.DrainAll(ctx); err != nil {
		s.logger.Printf("scheduler: drain failed: %v", err)
		return
	}
	s.logger.Printf("scheduler: drain completed in %s", time.Since(started).Round(time.Millisecond))
}

func (s *PendingScheduler) close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
