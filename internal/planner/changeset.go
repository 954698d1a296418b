package planner

import "github.com/talgya/loom/internal/store"

// Change is one queued store mutation.
type Change func(s store.Store) (store.Store, error)

// Changeset collects mutations queued by an action during one tick. Nothing
// touches the store until the planner folds the queue, in ApplyChange order,
// after the action returns.
type Changeset struct {
	changes []Change
}

// ApplyChange queues a mutation. The name is historical: the change is
// applied later, when the owning system folds the changeset.
func (cs *Changeset) ApplyChange(c Change) {
	if c == nil {
		return
	}
	cs.changes = append(cs.changes, c)
}

// Len reports the number of queued changes.
func (cs *Changeset) Len() int {
	return len(cs.changes)
}

func (cs *Changeset) fold(s store.Store) (store.Store, error) {
	var err error
	for _, c := range cs.changes {
		s, err = c(s)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}
