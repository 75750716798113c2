package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/greathall/greathall/internal/docstore"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	path := docstore.Path{Collection: "games", ID: "g1"}

	snap, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if snap.Exists {
		t.Fatal("absent document reported as existing")
	}

	if err := store.Set(ctx, path, map[string]any{"name": "Vault", "level": float64(3)}); err != nil {
		t.Fatalf("set: %v", err)
	}

	snap, err = store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snap.Exists || snap.Data["name"] != "Vault" || snap.Data["level"] != float64(3) {
		t.Fatalf("snapshot = %+v", snap)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, _ = store.Get(ctx, path)
	if snap.Exists {
		t.Fatal("document still exists after delete")
	}
}

func TestMergePreservesOtherFields(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	path := docstore.Path{Collection: "games", ID: "g1"}

	store.Set(ctx, path, map[string]any{"name": "Vault", "description": "deep"})
	if err := store.Merge(ctx, path, map[string]any{"name": "Vault II"}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	snap, _ := store.Get(ctx, path)
	if snap.Data["name"] != "Vault II" || snap.Data["description"] != "deep" {
		t.Fatalf("merged data = %+v", snap.Data)
	}
}

func TestQueryOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	col := "games/g1/characters"

	store.Set(ctx, docstore.Path{Collection: col, ID: "c2"}, map[string]any{"ownerId": "u1"})
	store.Set(ctx, docstore.Path{Collection: col, ID: "c1"}, map[string]any{"ownerId": "u2"})

	snaps, err := store.Query(ctx, col, docstore.FieldEquals("ownerId", "u1"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Path.ID != "c2" {
		t.Fatalf("query result = %+v", snaps)
	}

	all, err := store.List(ctx, col)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Path.ID != "c1" {
		t.Fatalf("list result = %+v", all)
	}
}

func TestApplyBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	pub := docstore.Path{Collection: "games/g1/characters", ID: "c1"}
	priv := docstore.Path{Collection: "games/g1/characters/c1/private", ID: "sheet"}

	err := store.Apply(ctx, []docstore.Write{
		{Kind: docstore.WriteSet, Path: pub, Data: map[string]any{"name": "Aria"}},
		{Kind: docstore.WriteSet, Path: priv, Data: map[string]any{"ac": float64(10)}},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	pubSnap, _ := store.Get(ctx, pub)
	privSnap, _ := store.Get(ctx, priv)
	if !pubSnap.Exists || !privSnap.Exists {
		t.Fatal("both documents should exist after batch")
	}

	err = store.Apply(ctx, []docstore.Write{
		{Kind: docstore.WriteDelete, Path: pub},
		{Kind: docstore.WriteSet, Path: docstore.Path{Collection: "games", ID: ""}},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	pubSnap, _ = store.Get(ctx, pub)
	if !pubSnap.Exists {
		t.Fatal("failed batch partially applied")
	}
}

func TestWatchDeliversInitialAndChanges(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	path := docstore.Path{Collection: "games", ID: "g1"}

	var snaps []docstore.Snapshot
	unsubscribe, err := store.Watch(ctx, path, func(s docstore.Snapshot) {
		snaps = append(snaps, s)
	}, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer unsubscribe()

	if len(snaps) != 1 || snaps[0].Exists {
		t.Fatalf("initial delivery = %+v, want absent snapshot", snaps)
	}

	store.Set(ctx, path, map[string]any{"name": "Vault"})
	if len(snaps) != 2 || !snaps[1].Exists {
		t.Fatalf("after set = %+v", snaps)
	}
}

func TestWatchQueryReEmitsOnChange(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	col := "games/g1/characters"

	var emissions [][]docstore.Snapshot
	unsubscribe, err := store.WatchQuery(ctx, col, nil,
		func(snaps []docstore.Snapshot) { emissions = append(emissions, snaps) }, nil)
	if err != nil {
		t.Fatalf("watch query: %v", err)
	}
	defer unsubscribe()

	store.Set(ctx, docstore.Path{Collection: col, ID: "c1"}, map[string]any{"name": "Aria"})

	if len(emissions) != 2 {
		t.Fatalf("emission count = %d, want 2", len(emissions))
	}
	if len(emissions[1]) != 1 || emissions[1][0].Path.ID != "c1" {
		t.Fatalf("second emission = %+v", emissions[1])
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	path := docstore.Path{Collection: "games", ID: "g1"}

	var calls int
	unsubscribe, err := store.Watch(ctx, path, func(docstore.Snapshot) { calls++ }, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	unsubscribe()
	unsubscribe()

	store.Set(ctx, path, map[string]any{"name": "Vault"})
	if calls != 1 {
		t.Fatalf("calls = %d, want only initial delivery", calls)
	}
}

func TestOpenInMemory(t *testing.T) {
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	path := docstore.Path{Collection: "games", ID: "g1"}
	if err := store.Set(ctx, path, map[string]any{"name": "Vault"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	snap, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snap.Exists {
		t.Fatal("document missing")
	}
}
