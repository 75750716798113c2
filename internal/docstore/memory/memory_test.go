package memory

import (
	"context"
	"testing"

	"github.com/greathall/greathall/internal/docstore"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := docstore.Path{Collection: "games", ID: "g1"}

	snap, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if snap.Exists {
		t.Fatal("absent document reported as existing")
	}

	if err := store.Set(ctx, path, map[string]any{"name": "Vault"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	snap, err = store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snap.Exists || snap.Data["name"] != "Vault" {
		t.Fatalf("snapshot = %+v", snap)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, _ = store.Get(ctx, path)
	if snap.Exists {
		t.Fatal("document still exists after delete")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMergeCreatesAndOverlays(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := docstore.Path{Collection: "games", ID: "g1"}

	if err := store.Merge(ctx, path, map[string]any{"name": "Vault"}); err != nil {
		t.Fatalf("merge into absent: %v", err)
	}
	if err := store.Merge(ctx, path, map[string]any{"description": "deep"}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	snap, _ := store.Get(ctx, path)
	if snap.Data["name"] != "Vault" || snap.Data["description"] != "deep" {
		t.Fatalf("merged data = %+v", snap.Data)
	}
}

func TestQueryFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := New()
	col := "games/g1/characters"

	store.Set(ctx, docstore.Path{Collection: col, ID: "c2"}, map[string]any{"ownerId": "u1"})
	store.Set(ctx, docstore.Path{Collection: col, ID: "c1"}, map[string]any{"ownerId": "u1"})
	store.Set(ctx, docstore.Path{Collection: col, ID: "c3"}, map[string]any{"ownerId": "u2"})

	snaps, err := store.Query(ctx, col, docstore.FieldEquals("ownerId", "u1"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snaps) != 2 || snaps[0].Path.ID != "c1" || snaps[1].Path.ID != "c2" {
		t.Fatalf("query result = %+v", snaps)
	}

	all, err := store.List(ctx, col)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list count = %d, want 3", len(all))
	}
}

func TestApplyIsAtomicBatch(t *testing.T) {
	ctx := context.Background()
	store := New()
	pub := docstore.Path{Collection: "games/g1/characters", ID: "c1"}
	priv := docstore.Path{Collection: "games/g1/characters/c1/private", ID: "sheet"}

	err := store.Apply(ctx, []docstore.Write{
		{Kind: docstore.WriteSet, Path: pub, Data: map[string]any{"name": "Aria"}},
		{Kind: docstore.WriteSet, Path: priv, Data: map[string]any{"ac": 10}},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	pubSnap, _ := store.Get(ctx, pub)
	privSnap, _ := store.Get(ctx, priv)
	if !pubSnap.Exists || !privSnap.Exists {
		t.Fatal("both halves should exist after batch")
	}

	// A batch with an invalid path fails before anything is applied.
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
	store := New()
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

	store.Delete(ctx, path)
	if len(snaps) != 3 || snaps[2].Exists {
		t.Fatalf("after delete = %+v", snaps)
	}
}

func TestWatchUnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	store := New()
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
		t.Fatalf("calls = %d, want only the initial delivery", calls)
	}
}

func TestWatchQueryEmitsOnCollectionChange(t *testing.T) {
	ctx := context.Background()
	store := New()
	col := "games/g1/characters"

	var emissions [][]docstore.Snapshot
	unsubscribe, err := store.WatchQuery(ctx, col, docstore.FieldEquals("ownerId", "u1"),
		func(snaps []docstore.Snapshot) { emissions = append(emissions, snaps) }, nil)
	if err != nil {
		t.Fatalf("watch query: %v", err)
	}
	defer unsubscribe()

	if len(emissions) != 1 || len(emissions[0]) != 0 {
		t.Fatalf("initial emission = %+v", emissions)
	}

	store.Set(ctx, docstore.Path{Collection: col, ID: "c1"}, map[string]any{"ownerId": "u1"})
	store.Set(ctx, docstore.Path{Collection: col, ID: "c2"}, map[string]any{"ownerId": "u2"})

	if len(emissions) != 3 {
		t.Fatalf("emission count = %d, want 3", len(emissions))
	}
	last := emissions[len(emissions)-1]
	if len(last) != 1 || last[0].Path.ID != "c1" {
		t.Fatalf("filtered emission = %+v", last)
	}
}

func TestWatchCallbackMayWriteToStore(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := docstore.Path{Collection: "games", ID: "g1"}
	mirror := docstore.Path{Collection: "audit", ID: "g1"}

	var deliveries int
	unsubscribe, err := store.Watch(ctx, path, func(snap docstore.Snapshot) {
		deliveries++
		if snap.Exists {
			// Writing from inside a callback must not deadlock.
			if err := store.Set(ctx, mirror, map[string]any{"seen": true}); err != nil {
				t.Errorf("write from callback: %v", err)
			}
		}
	}, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer unsubscribe()

	if err := store.Set(ctx, path, map[string]any{"name": "Vault"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if deliveries != 2 {
		t.Fatalf("deliveries = %d, want initial plus change", deliveries)
	}

	snap, err := store.Get(ctx, mirror)
	if err != nil || !snap.Exists {
		t.Fatalf("expected mirror document written, got exists=%v err=%v", snap.Exists, err)
	}
}

func TestSnapshotsAreIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := docstore.Path{Collection: "games", ID: "g1"}

	data := map[string]any{"name": "Vault", "tags": []any{"dark"}}
	store.Set(ctx, path, data)

	// Mutating the caller's map after the write changes nothing.
	data["name"] = "Changed"

	snap, _ := store.Get(ctx, path)
	if snap.Data["name"] != "Vault" {
		t.Fatalf("stored data aliased caller map: %+v", snap.Data)
	}

	// Mutating a returned snapshot changes nothing.
	snap.Data["name"] = "Mutated"
	again, _ := store.Get(ctx, path)
	if again.Data["name"] != "Vault" {
		t.Fatalf("snapshot aliased stored data: %+v", again.Data)
	}
}
