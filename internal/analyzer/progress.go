package analyzer

import (
	"log"
	"sync/atomic"
	"time"
)

// Progress logs a heartbeat while a long analysis call is in flight, since
// the CLI backend produces no output until it exits.
type Progress struct {
	label   string
	stopped atomic.Bool
	done    chan struct{}
}

func StartProgress(label string, interval time.Duration) *Progress {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	p := &Progress{label: label, done: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		started := time.Now()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				log.Printf("[Analyzer] %s... (%s elapsed)", p.label, time.Since(started).Round(time.Second))
			}
		}
	}()
	return p
}

// Stop ends the heartbeat. Safe to call more than once.
func (p *Progress) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.done)
	}
}
