// Package memory implements an in-memory docstore. It is the reference
// implementation for the store contract and the test double used across
// the services.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/greathall/greathall/internal/docstore"
)

// Store is an in-memory document store with change notification.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	hub         *docstore.Hub
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		hub:         docstore.NewHub(),
	}
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, path docstore.Path) (docstore.Snapshot, error) {
	if err := path.Validate(); err != nil {
		return docstore.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return docstore.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(path), nil
}

// List reads every document in a collection, ordered by id.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	return s.Query(ctx, collection, nil)
}

// Query reads the documents in a collection matching a filter, ordered by
// id. A nil filter matches everything.
func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryLocked(collection, filter), nil
}

// Set writes a whole document.
func (s *Store) Set(ctx context.Context, path docstore.Path, data map[string]any) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteSet, Path: path, Data: data}})
}

// Merge writes fields into a document, creating it when absent.
func (s *Store) Merge(ctx context.Context, path docstore.Path, fields map[string]any) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteMerge, Path: path, Data: fields}})
}

// Delete removes a document. Absent documents are a no-op.
func (s *Store) Delete(ctx context.Context, path docstore.Path) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteDelete, Path: path}})
}

// Apply performs a batch of writes atomically and notifies watchers once
// the whole batch is in place.
func (s *Store) Apply(ctx context.Context, writes []docstore.Write) error {
	for _, w := range writes {
		if err := w.Path.Validate(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	var changed []docstore.Snapshot
	for _, w := range writes {
		switch w.Kind {
		case docstore.WriteSet:
			s.putLocked(w.Path, cloneMap(w.Data))
		case docstore.WriteMerge:
			doc := s.docLocked(w.Path)
			if doc == nil {
				doc = make(map[string]any)
			}
			for field, value := range w.Data {
				doc[field] = cloneValue(value)
			}
			s.putLocked(w.Path, doc)
		case docstore.WriteDelete:
			if s.docLocked(w.Path) == nil {
				continue
			}
			delete(s.collections[w.Path.Collection], w.Path.ID)
		}
		changed = append(changed, s.snapshotLocked(w.Path))
	}
	s.mu.Unlock()

	for _, snap := range changed {
		s.hub.NotifyDoc(snap)
	}
	return nil
}

// Watch subscribes to one document, delivering the current state first.
func (s *Store) Watch(ctx context.Context, path docstore.Path, onChange func(docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unsubscribe := s.hub.SubscribeDoc(path.String(), onChange)

	s.mu.RLock()
	initial := s.snapshotLocked(path)
	s.mu.RUnlock()
	onChange(initial)

	return unsubscribe, nil
}

// WatchQuery subscribes to the filtered contents of a collection,
// delivering the current result set first.
func (s *Store) WatchQuery(ctx context.Context, collection string, filter docstore.Filter, onChange func([]docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit := func() {
		s.mu.RLock()
		snaps := s.queryLocked(collection, filter)
		s.mu.RUnlock()
		onChange(snaps)
	}

	unsubscribe := s.hub.SubscribeCollection(collection, emit)
	emit()
	return unsubscribe, nil
}

func (s *Store) docLocked(path docstore.Path) map[string]any {
	col, ok := s.collections[path.Collection]
	if !ok {
		return nil
	}
	doc, ok := col[path.ID]
	if !ok {
		return nil
	}
	return cloneMap(doc)
}

func (s *Store) putLocked(path docstore.Path, doc map[string]any) {
	col, ok := s.collections[path.Collection]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[path.Collection] = col
	}
	col[path.ID] = doc
}

func (s *Store) snapshotLocked(path docstore.Path) docstore.Snapshot {
	doc := s.docLocked(path)
	return docstore.Snapshot{Path: path, Exists: doc != nil, Data: doc}
}

func (s *Store) queryLocked(collection string, filter docstore.Filter) []docstore.Snapshot {
	col := s.collections[collection]

	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snaps := make([]docstore.Snapshot, 0, len(ids))
	for _, id := range ids {
		doc := cloneMap(col[id])
		if filter != nil && !filter(doc) {
			continue
		}
		snaps = append(snaps, docstore.Snapshot{
			Path:   docstore.Path{Collection: collection, ID: id},
			Exists: true,
			Data:   doc,
		})
	}
	return snaps
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
