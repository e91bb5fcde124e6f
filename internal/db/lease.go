package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrLeaseReleased = errors.New("db lease already released")

// Conn is a connection checked out of a pool. Release returns it.
type Conn interface {
	Querier
	Release()
}

type AcquireFunc func(ctx context.Context) (Conn, error)

// Lease scopes one pooled connection to one request. The connection is
// acquired on the first Querier call and returned by Release.
type Lease struct {
	acquire AcquireFunc

	mu       sync.Mutex
	conn     Conn
	released bool
}

func NewLease(acquire AcquireFunc) *Lease {
	return &Lease{acquire: acquire}
}

func (l *Lease) Querier(ctx context.Context) (Querier, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return nil, ErrLeaseReleased
	}
	if l.conn != nil {
		return l.conn, nil
	}

	conn, err := l.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	l.conn = conn
	return conn, nil
}

// Acquired reports whether a connection is currently held.
func (l *Lease) Acquired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn != nil
}

// Release is safe to call more than once.
func (l *Lease) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		l.conn.Release()
		l.conn = nil
	}
	l.released = true
}

type leaseKey struct{}

func WithLease(ctx context.Context, lease *Lease) context.Context {
	return context.WithValue(ctx, leaseKey{}, lease)
}

func LeaseFrom(ctx context.Context) *Lease {
	lease, _ := ctx.Value(leaseKey{}).(*Lease)
	return lease
}

// QuerierFrom returns the request's leased connection when ctx carries a
// lease, and fallback otherwise.
func QuerierFrom(ctx context.Context, fallback Querier) (Querier, error) {
	if lease := LeaseFrom(ctx); lease != nil {
		return lease.Querier(ctx)
	}
	if fallback == nil {
		return nil, errors.New("no querier available")
	}
	return fallback, nil
}
