// Package registrar wires renderer bundles into the host registry. The host
// capability may appear after plugin load, so registration is retried on a
// fixed interval until it succeeds or the attempt budget runs out.
package registrar

import (
	"strings"
	"sync"
	"time"

	"github.com/chatpilot/toolview/internal/render"
)

const (
	DefaultInterval    = 250 * time.Millisecond
	DefaultMaxAttempts = 40
)

type State string

const (
	StatePending    State = "pending"
	StateRegistered State = "registered"
	StateAbandoned  State = "abandoned"
)

// RegisterVariants binds template to every non-empty normalized tool name in
// names and registers the resulting bundles with host. It fails only when the
// host capability is absent; an empty name list still succeeds.
func RegisterVariants(host render.Host, pluginID string, names []string, template render.Template) bool {
	if host == nil {
		return false
	}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		// Registration errors for individual aliases are tolerated; the
		// capability being present is what success means here.
		_ = host.RegisterToolRenderer(template.Bind(pluginID, name))
	}
	return true
}

// Scheduler abstracts the retry timer so the state machine is testable
// without wall-clock waits.
type Scheduler interface {
	// Every invokes tick on each interval until the returned stop function
	// is called.
	Every(interval time.Duration, tick func()) (stop func())
}

type tickerScheduler struct{}

func (tickerScheduler) Every(interval time.Duration, tick func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				tick()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

type Options struct {
	Interval    time.Duration
	MaxAttempts int
	Scheduler   Scheduler
}

// Registrar drives one plugin module's registration attempts against a host
// registry that may not exist yet.
type Registrar struct {
	lookup   func() render.Host
	register func(render.Host) bool
	opts     Options

	mu       sync.Mutex
	state    State
	attempts int
	stop     func()
}

// New builds a registrar. lookup probes for the host capability and returns
// nil while it is unavailable; register performs the module's registrations
// and reports success.
func New(lookup func() render.Host, register func(render.Host) bool, opts Options) *Registrar {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Scheduler == nil {
		opts.Scheduler = tickerScheduler{}
	}
	return &Registrar{
		lookup:   lookup,
		register: register,
		opts:     opts,
		state:    StatePending,
	}
}

// Start makes an immediate registration attempt and, when it fails, begins
// polling. Calling Start more than once is a no-op after the first.
func (r *Registrar) Start() {
	r.mu.Lock()
	if r.state != StatePending || r.stop != nil {
		r.mu.Unlock()
		return
	}
	if r.attemptLocked() {
		r.mu.Unlock()
		return
	}
	r.stop = r.opts.Scheduler.Every(r.opts.Interval, r.tick)
	r.mu.Unlock()
}

func (r *Registrar) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return
	}
	if r.attemptLocked() {
		r.cancelLocked()
		return
	}
	// The immediate load-time attempt does not count against the timer
	// budget of MaxAttempts ticks.
	if r.attempts > r.opts.MaxAttempts {
		// The host may simply never load this plugin family; give up
		// silently.
		r.state = StateAbandoned
		r.cancelLocked()
	}
}

// attemptLocked runs one registration attempt and reports success.
func (r *Registrar) attemptLocked() bool {
	r.attempts++
	host := r.lookup()
	if host == nil {
		return false
	}
	if !r.register(host) {
		return false
	}
	r.state = StateRegistered
	return true
}

func (r *Registrar) cancelLocked() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// Stop cancels any pending retries without changing a terminal state.
func (r *Registrar) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()
}

func (r *Registrar) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Attempts reports how many registration attempts have run.
func (r *Registrar) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}
