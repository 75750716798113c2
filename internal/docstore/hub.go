package docstore

import "sync"

// Hub fans document and collection change notifications out to watchers.
// Both store implementations publish through a hub after each committed
// write. Deliveries to one watcher are serialized in arrival order, and
// re-entrant writes from inside a callback queue behind the in-flight
// delivery instead of deadlocking. Once unsubscribe returns no new
// callback begins, and unsubscribing twice is a no-op.
type Hub struct {
	mu          sync.Mutex
	nextID      int
	docWatchers map[string]map[int]*docWatcher
	colWatchers map[string]map[int]*colWatcher
}

type docWatcher struct {
	mu         sync.Mutex
	closed     bool
	delivering bool
	pending    []Snapshot
	onChange   func(Snapshot)
}

// deliver queues a snapshot and drains the queue unless another frame on
// this watcher is already draining it. The callback runs with the watcher
// lock released so it may write to the store; the write's notification
// lands on the queue and is picked up by the active frame.
func (w *docWatcher) deliver(snap Snapshot) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending = append(w.pending, snap)
	if w.delivering {
		w.mu.Unlock()
		return
	}
	w.delivering = true
	for !w.closed && len(w.pending) > 0 {
		next := w.pending[0]
		w.pending = w.pending[1:]
		w.mu.Unlock()
		w.onChange(next)
		w.mu.Lock()
	}
	w.delivering = false
	w.pending = nil
	w.mu.Unlock()
}

type colWatcher struct {
	mu         sync.Mutex
	closed     bool
	delivering bool
	pending    int
	notify     func()
}

func (w *colWatcher) deliver() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending++
	if w.delivering {
		w.mu.Unlock()
		return
	}
	w.delivering = true
	for !w.closed && w.pending > 0 {
		w.pending--
		w.mu.Unlock()
		w.notify()
		w.mu.Lock()
	}
	w.delivering = false
	w.pending = 0
	w.mu.Unlock()
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		docWatchers: make(map[string]map[int]*docWatcher),
		colWatchers: make(map[string]map[int]*colWatcher),
	}
}

// SubscribeDoc registers a watcher for one document key.
func (h *Hub) SubscribeDoc(key string, onChange func(Snapshot)) Unsubscribe {
	w := &docWatcher{onChange: onChange}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.docWatchers[key] == nil {
		h.docWatchers[key] = make(map[int]*docWatcher)
	}
	h.docWatchers[key][id] = w
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.closed = true
			w.pending = nil
			w.mu.Unlock()

			h.mu.Lock()
			delete(h.docWatchers[key], id)
			if len(h.docWatchers[key]) == 0 {
				delete(h.docWatchers, key)
			}
			h.mu.Unlock()
		})
	}
}

// SubscribeCollection registers a watcher notified on any change to a
// collection. The notify closure re-reads the collection and emits.
func (h *Hub) SubscribeCollection(collection string, notify func()) Unsubscribe {
	w := &colWatcher{notify: notify}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.colWatchers[collection] == nil {
		h.colWatchers[collection] = make(map[int]*colWatcher)
	}
	h.colWatchers[collection][id] = w
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.closed = true
			w.pending = 0
			w.mu.Unlock()

			h.mu.Lock()
			delete(h.colWatchers[collection], id)
			if len(h.colWatchers[collection]) == 0 {
				delete(h.colWatchers, collection)
			}
			h.mu.Unlock()
		})
	}
}

// NotifyDoc delivers a document snapshot to its watchers and wakes the
// owning collection's watchers.
func (h *Hub) NotifyDoc(snap Snapshot) {
	key := snap.Path.String()

	h.mu.Lock()
	docs := make([]*docWatcher, 0, len(h.docWatchers[key]))
	for _, w := range h.docWatchers[key] {
		docs = append(docs, w)
	}
	cols := make([]*colWatcher, 0, len(h.colWatchers[snap.Path.Collection]))
	for _, w := range h.colWatchers[snap.Path.Collection] {
		cols = append(cols, w)
	}
	h.mu.Unlock()

	for _, w := range docs {
		w.deliver(snap)
	}
	for _, w := range cols {
		w.deliver()
	}
}
