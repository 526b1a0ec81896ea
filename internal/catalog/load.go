package catalog

import (
	"context"
	"sync/atomic"
)

// Logger receives fetch diagnostics. debug.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

// Load fetches the templates from src. Any failure is reported to log and
// yields an empty catalog; Load never returns an error.
func Load(ctx context.Context, src Source, log Logger) *Catalog {
	if log == nil {
		log = nopLogger{}
	}
	if src == nil {
		log.Warnf("no template source configured")
		return Empty()
	}

	templates, err := src.Fetch(ctx)
	if err != nil {
		log.Warnf("templates unavailable: %v", err)
		return Empty()
	}

	c := New(templates)
	log.Debugf("loaded %d templates", c.Len())
	return c
}

// Session performs the one-time catalog fetch in the background. Until the
// fetch completes every snapshot is empty.
type Session struct {
	current atomic.Pointer[Catalog]
	done    chan struct{}
}

// StartSession begins fetching from src and returns immediately.
func StartSession(ctx context.Context, src Source, log Logger) *Session {
	s := &Session{done: make(chan struct{})}
	s.current.Store(Empty())

	go func() {
		defer close(s.done)
		s.current.Store(Load(ctx, src, log))
	}()
	return s
}

// Snapshot returns the catalog available right now without blocking.
func (s *Session) Snapshot() *Catalog {
	return s.current.Load()
}

// Done is closed once the fetch has finished, successfully or not.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the fetch finishes or ctx ends and returns the snapshot
// available at that moment.
func (s *Session) Wait(ctx context.Context) *Catalog {
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return s.Snapshot()
}
