package hyperlimit

import "sync/atomic"

// clientList is a copy-on-write set of client identifiers. Every mutation
// builds a brand new map from the current snapshot and atomically
// publishes it, so readers calling contains always see a complete,
// consistent set — never one that is partway through an update.
type clientList struct {
	snapshot atomic.Pointer[map[string]struct{}]
}

func newClientList() *clientList {
	l := &clientList{}
	empty := map[string]struct{}{}
	l.snapshot.Store(&empty)
	return l
}

func (l *clientList) contains(id string) bool {
	m := l.snapshot.Load()
	_, ok := (*m)[id]
	return ok
}

func (l *clientList) add(id string) {
	for {
		old := l.snapshot.Load()
		if _, ok := (*old)[id]; ok {
			return
		}
		next := make(map[string]struct{}, len(*old)+1)
		for k := range *old {
			next[k] = struct{}{}
		}
		next[id] = struct{}{}
		if l.snapshot.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (l *clientList) remove(id string) {
	for {
		old := l.snapshot.Load()
		if _, ok := (*old)[id]; !ok {
			return
		}
		next := make(map[string]struct{}, len(*old))
		for k := range *old {
			if k != id {
				next[k] = struct{}{}
			}
		}
		if l.snapshot.CompareAndSwap(old, &next) {
			return
		}
	}
}
