package asset

import (
	"context"
	"sync"

	"camera-viewer/internal/model"
)

// Outcome is the terminal result of a load: exactly one of Model and Err is set.
type Outcome struct {
	Model *model.Model
	Err   error
}

// Future holds the single outcome of an asynchronous load.
type Future struct {
	done    chan struct{}
	once    sync.Once
	outcome Outcome
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// NewFuture returns an unresolved future and the function that resolves it.
// Loaders other than Loader use it to hand out the same kind of result.
func NewFuture() (*Future, func(Outcome)) {
	f := newFuture()
	return f, f.resolve
}

// resolve records the outcome. Only the first call has an effect.
func (f *Future) resolve(o Outcome) {
	f.once.Do(func() {
		f.outcome = o
		close(f.done)
	})
}

// Done is closed once the outcome is known.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Poll returns the outcome without blocking. ok is false while loading.
func (f *Future) Poll() (o Outcome, ok bool) {
	select {
	case <-f.done:
		return f.outcome, true
	default:
		return Outcome{}, false
	}
}

// Wait blocks until the outcome is known or ctx is done. Giving up on ctx does
// not abort the load.
func (f *Future) Wait(ctx context.Context) (*model.Model, error) {
	select {
	case <-f.done:
		return f.outcome.Model, f.outcome.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
