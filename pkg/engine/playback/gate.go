package playback

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate paces the emission of one run. The drive loop calls AwaitTurn before every event,
// command handlers call SetPaused / SetSpeed and never block on the drive loop.
type Gate struct {
	mu      sync.Mutex
	paused  bool
	delay   time.Duration
	limiter *rate.Limiter
	waiters []chan struct{}
}

func NewGate(delay time.Duration) *Gate {
	delay = clamp(delay)
	return &Gate{
		delay:   delay,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// AwaitTurn blocks while the gate is paused, then waits the inter-event delay.
// a nil return permits exactly one emission. returns ctx.Err() when ctx is done first.
func (g *Gate) AwaitTurn(ctx context.Context) error {
	for {
		g.mu.Lock()
		if g.paused {
			wake := make(chan struct{})
			g.waiters = append(g.waiters, wake)
			g.mu.Unlock()

			select {
			case <-wake:
			case <-ctx.Done():
				g.removeWaiter(wake)
				return ctx.Err()
			}
			continue
		}
		limiter, delay := g.limiter, g.delay
		g.mu.Unlock()

		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if delay == 0 {
			// let command handlers run between two undelayed emissions
			runtime.Gosched()
		}

		// a pause that arrived during the delay holds this emission back
		g.mu.Lock()
		paused := g.paused
		g.mu.Unlock()
		if !paused {
			return nil
		}
	}
}

// SetPaused. pausing takes effect at the next AwaitTurn. un-pausing releases exactly one waiter,
// the oldest; later waiters stay queued until the next un-pause.
func (g *Gate) SetPaused(paused bool) {
	g.mu.Lock()
	g.paused = paused
	g.mu.Unlock()

	if !paused {
		g.handoff()
	}
}

// SetSpeed. negative delays clamp to zero. applies from the next AwaitTurn.
func (g *Gate) SetSpeed(delay time.Duration) {
	delay = clamp(delay)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.delay = delay
	g.limiter.SetLimit(rate.Every(delay))
}

// Reset. running state with a fresh limiter, used when a new run starts.
func (g *Gate) Reset(delay time.Duration) {
	delay = clamp(delay)

	g.mu.Lock()
	g.paused = false
	g.delay = delay
	g.limiter = rate.NewLimiter(rate.Every(delay), 1)
	g.mu.Unlock()

	g.handoff()
}

func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

func (g *Gate) Speed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.delay
}

func (g *Gate) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}

// handoff. wake the oldest waiter, and only that one, if the gate is running.
func (g *Gate) handoff() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused || len(g.waiters) == 0 {
		return
	}
	wake := g.waiters[0]
	g.waiters = g.waiters[1:]
	close(wake)
}

func (g *Gate) removeWaiter(wake chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, w := range g.waiters {
		if w == wake {
			g.waiters = append(g.waiters[:i], g.waiters[i+1:]...)
			return
		}
	}
}
