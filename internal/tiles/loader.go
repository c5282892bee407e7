// Package tiles serves map tile images, preferring the network while
// online and the local store otherwise.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
)

const requestTimeout = 15 * time.Second

// ErrNotCached reports that a tile is neither cached nor reachable.
var ErrNotCached = errors.New("tile not cached")

// Store is the local tile store.
type Store interface {
	Put(ctx context.Context, url string, blob []byte) error
	Get(ctx context.Context, url string) ([]byte, error)
}

// Loader fetches tiles with an offline fallback.
type Loader struct {
	httpClient *http.Client
	store      Store
	monitor    *connectivity.Monitor
}

// NewLoader creates a tile loader.
func NewLoader(store Store, monitor *connectivity.Monitor) *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: requestTimeout},
		store:      store,
		monitor:    monitor,
	}
}

// Load returns the tile at url. While offline only the store is consulted
// and a miss is ErrNotCached. While online the tile is fetched and cached
// best-effort; a failed fetch falls back to the store.
func (l *Loader) Load(ctx context.Context, url string) ([]byte, error) {
	if !l.monitor.Online() {
		return l.fromStore(ctx, url)
	}

	blob, err := l.fetch(ctx, url)
	l.monitor.Report(err)
	if err != nil {
		observability.RemoteFetches.WithLabelValues("tiles", "error").Inc()
		return l.fromStore(ctx, url)
	}

	observability.RemoteFetches.WithLabelValues("tiles", "success").Inc()
	if err := l.store.Put(ctx, url, blob); err != nil {
		log.Printf("Caching tile %s failed: %v", url, err)
	}
	return blob, nil
}

func (l *Loader) fromStore(ctx context.Context, url string) ([]byte, error) {
	observability.CacheFallbacks.Inc()
	blob, err := l.store.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, ErrNotCached
	}
	return blob, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile server returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
