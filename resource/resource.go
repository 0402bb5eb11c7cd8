package resource

import (
	"context"
	"errors"
	"sync"

	"github.com/inklinehq/Inkline-CLI/request"
)

// Status represents the lifecycle state of a remote fetch.
type Status int

const (
	Idle Status = iota
	Loading
	Ok
	Error
	NotFound
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ok:
		return "ok"
	case Error:
		return "error"
	case NotFound:
		return "notfound"
	default:
		return "unknown"
	}
}

// FetchFunc loads the resource's data. It should honour ctx
// and return ctx.Err() when the fetch is cancelled.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is a point-in-time view of a RemoteResource.
// Data is only meaningful when Status is Ok and
// Err is only meaningful when Status is Error.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    error
}

// RemoteResource tracks one fetch-for-display operation.
//
// Calling Start again supersedes any in-flight fetch for this
// resource. A superseded fetch's eventual result is discarded so
// a slow stale response can never clobber a fresher one.
// Cancellation is not a failure and causes no state change.
type RemoteResource[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	status Status
	data   T
	err    error
}

func New[T any]() *RemoteResource[T] {
	return &RemoteResource[T]{}
}

// Start begins fetching in the background and returns a channel that
// is closed once this particular fetch has settled, whether its result
// was committed or discarded.
func (r *RemoteResource[T]) Start(ctx context.Context, fetch FetchFunc[T]) <-chan struct{} {
	if ctx == nil {
		ctx = context.Background()
	}
	fetchCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.gen++
	gen := r.gen

	var zero T
	r.status = Loading
	r.data = zero
	r.err = nil
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := fetch(fetchCtx)
		r.commit(gen, data, err)
	}()
	return done
}

// Cancel aborts any in-flight fetch. The resource keeps
// whatever state it was last in apart from loading, which
// simply never settles.
func (r *RemoteResource[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	// bump the generation so a fetch that ignores its
	// context can no longer commit its result
	r.gen++
}

func (r *RemoteResource[T]) commit(gen uint64, data T, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		// superseded by a newer Start or a Cancel
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}

	var zero T
	switch {
	case err == nil:
		r.status = Ok
		r.data = data
		r.err = nil
	case errors.Is(err, request.ErrNotFound):
		r.status = NotFound
		r.data = zero
		r.err = nil
	default:
		r.status = Error
		r.data = zero
		r.err = err
	}
}

// Snapshot returns the current state of the resource.
func (r *RemoteResource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot[T]{
		Status: r.status,
		Data:   r.data,
		Err:    r.err,
	}
}
