package resource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSuccess(t *testing.T) {
	r := New[string]()
	assert.Equal(t, Idle, r.Snapshot().Status)

	done := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	<-done

	snap := r.Snapshot()
	assert.Equal(t, Ok, snap.Status)
	assert.Equal(t, "hello", snap.Data)
	assert.NoError(t, snap.Err)
}

func TestStartError(t *testing.T) {
	r := New[string]()
	fetchErr := errors.New("connection refused")

	done := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "", fetchErr
	})
	<-done

	snap := r.Snapshot()
	assert.Equal(t, Error, snap.Status)
	assert.Empty(t, snap.Data)
	assert.ErrorIs(t, snap.Err, fetchErr)
}

func TestStartNotFound(t *testing.T) {
	r := New[string]()

	done := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "", request.ErrNotFound
	})
	<-done

	snap := r.Snapshot()
	assert.Equal(t, NotFound, snap.Status)
	assert.Empty(t, snap.Data)
	assert.NoError(t, snap.Err, "a missing resource is a terminal state, not a failure")
}

// A slow response from a superseded fetch must never
// overwrite the newer fetch's result.
func TestStartSupersedesInFlightFetch(t *testing.T) {
	r := New[string]()

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	firstDone := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		close(firstStarted)
		<-release
		return "stale", nil
	})

	<-firstStarted
	secondDone := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	<-secondDone

	// let the first fetch finish late
	close(release)
	<-firstDone

	snap := r.Snapshot()
	require.Equal(t, Ok, snap.Status)
	assert.Equal(t, "fresh", snap.Data)
}

func TestCancelSurfacesNothing(t *testing.T) {
	r := New[int]()

	started := make(chan struct{})
	done := r.Start(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	<-started
	r.Cancel()
	<-done

	snap := r.Snapshot()
	assert.Equal(t, Loading, snap.Status)
	assert.NoError(t, snap.Err)
}

func TestStartResetsStaleData(t *testing.T) {
	r := New[string]()

	done := r.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "first", nil
	})
	<-done
	require.Equal(t, "first", r.Snapshot().Data)

	release := make(chan struct{})
	done = r.Start(context.Background(), func(ctx context.Context) (string, error) {
		<-release
		return "second", nil
	})

	snap := r.Snapshot()
	assert.Equal(t, Loading, snap.Status)
	assert.Empty(t, snap.Data, "stale data should not be visible while reloading")

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fetch did not settle")
	}
	assert.Equal(t, "second", r.Snapshot().Data)
}
