// Package mutate applies speculative list mutations before the
// server has confirmed them, and reconciles or rolls back once
// the server responds.
package mutate

import (
	"errors"
	"fmt"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// Mutator mutates a list of items identified by IdOf.
//
// Callers must serialize repeated mutations on the same id,
// e.g. by disabling the triggering control while one is in flight.
type Mutator[T any] struct {
	// IdOf extracts the identity used for reconciliation.
	// Reconciliation always matches by id, never by position,
	// since a concurrent refresh may have reordered the list.
	IdOf func(item T) string

	// OnChange, if set, is called with every intermediate list so
	// the caller can re-render while the mutation is in flight.
	OnChange func(list []T)
}

func NewMutator[T any](idOf func(item T) string) *Mutator[T] {
	if idOf == nil {
		panic(
			fmt.Errorf(
				"error %d: mutator requires an id function",
				utils.DEV_ERROR,
			),
		)
	}
	return &Mutator[T]{IdOf: idOf}
}

func (m *Mutator[T]) notify(list []T) {
	if m.OnChange != nil {
		m.OnChange(list)
	}
}

func (m *Mutator[T]) indexOf(list []T, id string) int {
	for i, item := range list {
		if m.IdOf(item) == id {
			return i
		}
	}
	return -1
}

func cloneList[T any](list []T) []T {
	cloned := make([]T, len(list))
	copy(cloned, list)
	return cloned
}

// Create prepends provisional to the list immediately, then runs commit.
// On success the provisional entry is replaced in place with the item the
// server returned. On failure the provisional entry is removed and the
// returned list is identical to the input.
func (m *Mutator[T]) Create(list []T, provisional T, commit func() (T, error)) ([]T, error) {
	provisionalId := m.IdOf(provisional)

	optimistic := make([]T, 0, len(list)+1)
	optimistic = append(optimistic, provisional)
	optimistic = append(optimistic, list...)
	m.notify(optimistic)

	saved, err := commit()
	if err != nil {
		rolledBack := cloneList(list)
		m.notify(rolledBack)
		return rolledBack, err
	}

	reconciled := cloneList(optimistic)
	if idx := m.indexOf(reconciled, provisionalId); idx != -1 {
		reconciled[idx] = saved
	} else {
		// the provisional entry was removed by a concurrent
		// refresh, so surface the confirmed item at the top
		reconciled = append([]T{saved}, reconciled...)
	}
	m.notify(reconciled)
	return reconciled, nil
}

// Delete removes the item matching id immediately, then runs commit.
// A 404 from the server means the item was already gone and counts as
// success. Any other failure reinserts the removed item at its
// original index.
func (m *Mutator[T]) Delete(list []T, id string, commit func() error) ([]T, error) {
	idx := m.indexOf(list, id)
	if idx == -1 {
		return list, fmt.Errorf(
			"error %d: no item with id %q to delete",
			utils.DEV_ERROR,
			id,
		)
	}
	removed := list[idx]

	optimistic := make([]T, 0, len(list)-1)
	optimistic = append(optimistic, list[:idx]...)
	optimistic = append(optimistic, list[idx+1:]...)
	m.notify(optimistic)

	err := commit()
	if err != nil && !errors.Is(err, request.ErrNotFound) {
		reinsertAt := idx
		if reinsertAt > len(optimistic) {
			reinsertAt = len(optimistic)
		}
		rolledBack := make([]T, 0, len(optimistic)+1)
		rolledBack = append(rolledBack, optimistic[:reinsertAt]...)
		rolledBack = append(rolledBack, removed)
		rolledBack = append(rolledBack, optimistic[reinsertAt:]...)
		m.notify(rolledBack)
		return rolledBack, err
	}

	return optimistic, nil
}

// Update applies patch to the item matching id immediately, then runs
// commit. On failure the pre-patch item is restored, matched by id.
func (m *Mutator[T]) Update(list []T, id string, patch func(item T) T, commit func() error) ([]T, error) {
	idx := m.indexOf(list, id)
	if idx == -1 {
		return list, fmt.Errorf(
			"error %d: no item with id %q to update",
			utils.DEV_ERROR,
			id,
		)
	}
	snapshot := list[idx]

	optimistic := cloneList(list)
	optimistic[idx] = patch(snapshot)
	m.notify(optimistic)

	err := commit()
	if err != nil {
		rolledBack := cloneList(optimistic)
		if revertIdx := m.indexOf(rolledBack, id); revertIdx != -1 {
			rolledBack[revertIdx] = snapshot
		}
		m.notify(rolledBack)
		return rolledBack, err
	}

	return optimistic, nil
}
