// Package connectivity tracks whether the process currently has a usable
// network path to its upstream services.
package connectivity

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
)

// Monitor holds the process-wide online flag. Reads are synchronous and
// lock-free; subscribers are notified only when the status actually changes.
type Monitor struct {
	online atomic.Bool

	mu          sync.Mutex
	subscribers map[int]func(bool)
	nextID      int
}

// NewMonitor creates a monitor that starts online. Call Probe to establish
// the real initial status.
func NewMonitor() *Monitor {
	m := &Monitor{subscribers: make(map[int]func(bool))}
	m.online.Store(true)
	return m
}

// Online reports the current status.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Subscribe registers fn to run on every status transition. The returned
// function removes the subscription.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// SetOnline updates the status. Subscribers fire only when the value changes.
func (m *Monitor) SetOnline(online bool) {
	if m.online.Swap(online) == online {
		return
	}

	if online {
		log.Println("Connectivity restored")
	} else {
		log.Println("Connectivity lost")
	}

	m.mu.Lock()
	fns := make([]func(bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}

// Report feeds the outcome of a remote call into the monitor. A nil error
// marks the process online; a network-shaped error marks it offline.
// Application-level failures (bad status, decode errors) leave the status
// alone, since the network itself answered.
func (m *Monitor) Report(err error) {
	if err == nil {
		m.SetOnline(true)
		return
	}
	if isNetworkError(err) {
		m.SetOnline(false)
	}
}

// Probe makes a best-effort request to establish the initial status. Any
// response, even an error status, proves the network path works.
func (m *Monitor) Probe(ctx context.Context, client *http.Client, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		m.SetOnline(false)
		return
	}
	resp.Body.Close()
	m.SetOnline(true)
}

func isNetworkError(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
