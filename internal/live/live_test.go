package live

import (
	"context"
	"sync"
	"testing"

	"github.com/greathall/greathall/internal/docstore"
)

// streamStore is a docstore.Store test double with manual control over
// when subscriptions deliver, so latch and teardown timing can be
// observed precisely. Unlike the real implementations it does not emit an
// initial snapshot on Watch.
type streamStore struct {
	mu          sync.Mutex
	docWatchers map[string][]*streamWatcher
	colWatchers map[string][]*colStreamWatcher
	unsubCounts map[string]int
}

type streamWatcher struct {
	closed   bool
	onChange func(docstore.Snapshot)
	onError  func(error)
}

type colStreamWatcher struct {
	closed   bool
	onChange func([]docstore.Snapshot)
	onError  func(error)
}

func newStreamStore() *streamStore {
	return &streamStore{
		docWatchers: make(map[string][]*streamWatcher),
		colWatchers: make(map[string][]*colStreamWatcher),
		unsubCounts: make(map[string]int),
	}
}

func (s *streamStore) Get(context.Context, docstore.Path) (docstore.Snapshot, error) {
	return docstore.Snapshot{}, nil
}

func (s *streamStore) List(context.Context, string) ([]docstore.Snapshot, error) { return nil, nil }

func (s *streamStore) Query(context.Context, string, docstore.Filter) ([]docstore.Snapshot, error) {
	return nil, nil
}

func (s *streamStore) Set(context.Context, docstore.Path, map[string]any) error { return nil }

func (s *streamStore) Merge(context.Context, docstore.Path, map[string]any) error { return nil }

func (s *streamStore) Delete(context.Context, docstore.Path) error { return nil }

func (s *streamStore) Apply(context.Context, []docstore.Write) error { return nil }

func (s *streamStore) Watch(_ context.Context, path docstore.Path, onChange func(docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	w := &streamWatcher{onChange: onChange, onError: onError}
	key := path.String()

	s.mu.Lock()
	s.docWatchers[key] = append(s.docWatchers[key], w)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if !w.closed {
			w.closed = true
			s.unsubCounts[key]++
		}
		s.mu.Unlock()
	}, nil
}

func (s *streamStore) WatchQuery(_ context.Context, collection string, _ docstore.Filter, onChange func([]docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	w := &colStreamWatcher{onChange: onChange, onError: onError}

	s.mu.Lock()
	s.colWatchers[collection] = append(s.colWatchers[collection], w)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if !w.closed {
			w.closed = true
			s.unsubCounts[collection]++
		}
		s.mu.Unlock()
	}, nil
}

func (s *streamStore) emitDoc(path docstore.Path, snap docstore.Snapshot) {
	s.mu.Lock()
	watchers := append([]*streamWatcher(nil), s.docWatchers[path.String()]...)
	s.mu.Unlock()
	for _, w := range watchers {
		if !w.closed {
			w.onChange(snap)
		}
	}
}

func (s *streamStore) failDoc(path docstore.Path, err error) {
	s.mu.Lock()
	watchers := append([]*streamWatcher(nil), s.docWatchers[path.String()]...)
	s.mu.Unlock()
	for _, w := range watchers {
		if !w.closed && w.onError != nil {
			w.onError(err)
		}
	}
}

func (s *streamStore) emitQuery(collection string, snaps []docstore.Snapshot) {
	s.mu.Lock()
	watchers := append([]*colStreamWatcher(nil), s.colWatchers[collection]...)
	s.mu.Unlock()
	for _, w := range watchers {
		if !w.closed {
			w.onChange(snaps)
		}
	}
}

func (s *streamStore) unsubCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubCounts[key]
}

var _ docstore.Store = (*streamStore)(nil)

func publicData(id, gameID, ownerID, name string) map[string]any {
	return map[string]any{
		"id":      id,
		"gameId":  gameID,
		"ownerId": ownerID,
		"name":    name,
	}
}

func privateData(ac int) map[string]any {
	return map[string]any{
		"ac": float64(ac),
		"hp": map[string]any{"current": float64(10), "max": float64(10), "temp": float64(0)},
	}
}

func existing(path docstore.Path, data map[string]any) docstore.Snapshot {
	return docstore.Snapshot{Path: path, Exists: true, Data: data}
}

func absent(path docstore.Path) docstore.Snapshot {
	return docstore.Snapshot{Path: path}
}
