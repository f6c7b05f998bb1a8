package session

import (
	"context"
	"sync"
	"time"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
)

// Config tunes session retention and history reads.
type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	HistoryLimit  int
}

// Store keeps every active conversation in memory. All mutation goes
// through Store methods so callers never hold a reference into the map;
// reads hand out copies.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	ttl           time.Duration
	sweepInterval time.Duration
	historyLimit  int

	stopCh   chan struct{}
	stopOnce sync.Once

	l pkgLog.Logger
}

// New builds a Store and starts its eviction sweep.
func New(cfg Config, l pkgLog.Logger) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	s := &Store{
		sessions:      make(map[string]*model.Session),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		historyLimit:  cfg.HistoryLimit,
		stopCh:        make(chan struct{}),
		l:             l,
	}

	go s.sweep()

	return s
}

// Stop halts the eviction sweep. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Store) sweep() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			removed := s.EvictOlderThan(time.Now().Add(-s.ttl))
			if removed > 0 {
				s.l.Infof(context.Background(), "%s: "+LogMsgSessionsEvicted, LogPrefixSweep, removed)
			}
		}
	}
}
