package client

import (
	"context"
	"sync"
	"time"
)

const DefaultPollInterval = 30 * time.Second

// Poller runs fn once immediately and then on every tick until stopped.
// fn receives a context that is cancelled by Stop, so a read in flight can
// notice it is no longer wanted.
type Poller struct {
	Interval time.Duration

	fn     func(ctx context.Context)
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(interval time.Duration, fn func(ctx context.Context)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{Interval: interval, fn: fn}
}

// Start begins polling. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		p.fn(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				p.fn(ctx)
			}
		}
	}()
}

// Stop cancels polling and returns a channel that is closed once the poll
// goroutine has exited. Stop does not block, so fn may call it; callers on
// other goroutines that need fn to have returned receive from the channel.
// No new call to fn starts after Stop.
func (p *Poller) Stop() <-chan struct{} {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return closedChan
	}
	cancel()
	return done
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
