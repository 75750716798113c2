// Package docstore defines the document datastore contract the rest of
// the library is built against: path-addressed JSON documents with
// atomic multi-document writes and per-document change subscriptions.
// Implementations live in the memory and sqlite subpackages.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// Path addresses one document inside a collection. Collections are
// slash-separated, e.g. "games/g1/characters".
type Path struct {
	Collection string
	ID         string
}

// String renders the full document path.
func (p Path) String() string {
	return p.Collection + "/" + p.ID
}

// Validate checks that the path has a non-empty id and well-formed
// collection with no empty segments.
func (p Path) Validate() error {
	if p.ID == "" || strings.Contains(p.ID, "/") {
		return apperrors.WithMetadata(apperrors.CodePathInvalid,
			fmt.Sprintf("invalid document id %q", p.ID),
			map[string]string{"Path": p.String()})
	}
	if p.Collection == "" {
		return apperrors.WithMetadata(apperrors.CodePathInvalid,
			"collection is required",
			map[string]string{"Path": p.String()})
	}
	for _, segment := range strings.Split(p.Collection, "/") {
		if segment == "" {
			return apperrors.WithMetadata(apperrors.CodePathInvalid,
				fmt.Sprintf("invalid collection %q", p.Collection),
				map[string]string{"Path": p.String()})
		}
	}
	return nil
}

// Snapshot is the state of one document at a point in time. Absent
// documents are a normal outcome and carry Exists=false rather than an
// error.
type Snapshot struct {
	Path   Path
	Exists bool
	Data   map[string]any
}

// WriteKind selects the operation a Write performs.
type WriteKind int

const (
	WriteSet WriteKind = iota
	WriteMerge
	WriteDelete
)

// Write is one entry in an atomic batch.
type Write struct {
	Kind WriteKind
	Path Path
	Data map[string]any
}

// Filter selects documents in a query by their decoded data.
type Filter func(data map[string]any) bool

// FieldEquals filters documents whose field equals a value.
func FieldEquals(field string, value any) Filter {
	return func(data map[string]any) bool {
		return data[field] == value
	}
}

// Unsubscribe tears down a subscription. Implementations guarantee no
// callbacks fire after it returns and that calling it again is a no-op.
type Unsubscribe func()

// Store is the document datastore contract.
type Store interface {
	// Get reads one document. Absence is reported via Snapshot.Exists.
	Get(ctx context.Context, path Path) (Snapshot, error)

	// List reads every document in a collection.
	List(ctx context.Context, collection string) ([]Snapshot, error)

	// Query reads the documents in a collection matching a filter.
	Query(ctx context.Context, collection string, filter Filter) ([]Snapshot, error)

	// Set writes a whole document, creating or replacing it.
	Set(ctx context.Context, path Path, data map[string]any) error

	// Merge writes only the given fields into a document, creating it
	// when absent.
	Merge(ctx context.Context, path Path, fields map[string]any) error

	// Delete removes a document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, path Path) error

	// Apply performs a batch of writes atomically.
	Apply(ctx context.Context, writes []Write) error

	// Watch subscribes to one document. The current state, absent
	// included, is delivered immediately, then every subsequent change.
	Watch(ctx context.Context, path Path, onChange func(Snapshot), onError func(error)) (Unsubscribe, error)

	// WatchQuery subscribes to the filtered contents of a collection.
	// The current result set is delivered immediately, then again on
	// every change to the collection.
	WatchQuery(ctx context.Context, collection string, filter Filter, onChange func([]Snapshot), onError func(error)) (Unsubscribe, error)
}

// Encode converts a struct into the document data representation via its
// JSON form.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode converts document data back into a struct via its JSON form.
func Decode(data map[string]any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
