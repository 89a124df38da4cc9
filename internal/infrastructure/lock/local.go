// Package lock implementa ports.KeyedLocker en proceso y sobre Redis.
package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
)

var _ ports.KeyedLocker = (*Local)(nil)

// Local candado por clave dentro del proceso. Las entradas se liberan cuando nadie las usa.
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{} // capacidad 1: ocupado si tiene un elemento
	refs int
}

// NewLocal crea el locker.
func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

// Lock espera el candado de key o hasta que ctx termine.
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size entradas vivas (tests).
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
