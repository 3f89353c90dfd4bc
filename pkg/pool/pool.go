// Package pool provides a small bounded worker pool used to
// parallelize independent per-counterparty Paillier operations during
// GG20 signing.
package pool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool runs queued tasks with bounded concurrency.
type Pool struct {
	group *errgroup.Group
}

// NewPool creates a Pool with the given concurrency limit. A limit of
// 0 defaults to GOMAXPROCS, matching the teacher's pool.NewPool(0)
// convention.
func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)
	return &Pool{group: g}
}

// Go queues fn to run, blocking only if the pool is at its
// concurrency limit.
func (p *Pool) Go(fn func() error) {
	p.group.Go(fn)
}

// Wait blocks until every queued task has completed, returning the
// first error encountered, if any.
func (p *Pool) Wait() error {
	return p.group.Wait()
}

// TearDown is a no-op retained for parity with the teacher's
// pool.Pool API shape; Pool holds no resources beyond the errgroup
// itself.
func (p *Pool) TearDown() {}
