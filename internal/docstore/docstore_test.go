package docstore

import (
	"errors"
	"testing"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

func TestPathValidate(t *testing.T) {
	valid := []Path{
		{Collection: "games", ID: "g1"},
		{Collection: "games/g1/characters", ID: "c1"},
		{Collection: "games/g1/characters/c1/private", ID: "sheet"},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Fatalf("validate %s: %v", p, err)
		}
	}

	invalid := []Path{
		{Collection: "games", ID: ""},
		{Collection: "games", ID: "a/b"},
		{Collection: "", ID: "g1"},
		{Collection: "games//characters", ID: "c1"},
	}
	for _, p := range invalid {
		if err := p.Validate(); !errors.Is(err, apperrors.New(apperrors.CodePathInvalid, "")) {
			t.Fatalf("expected path error for %q/%q, got %v", p.Collection, p.ID, err)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	type doc struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}

	data, err := Encode(doc{Name: "Aria", Level: 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data["name"] != "Aria" {
		t.Fatalf("encoded name = %v", data["name"])
	}

	var got doc
	if err := Decode(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Aria" || got.Level != 3 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestFieldEquals(t *testing.T) {
	filter := FieldEquals("ownerId", "u1")
	if !filter(map[string]any{"ownerId": "u1"}) {
		t.Fatal("matching document rejected")
	}
	if filter(map[string]any{"ownerId": "u2"}) {
		t.Fatal("non-matching document accepted")
	}
	if filter(map[string]any{}) {
		t.Fatal("document without field accepted")
	}
}

func TestHubUnsubscribeStopsCallbacks(t *testing.T) {
	hub := NewHub()
	path := Path{Collection: "games", ID: "g1"}

	var calls int
	unsubscribe := hub.SubscribeDoc(path.String(), func(Snapshot) { calls++ })

	hub.NotifyDoc(Snapshot{Path: path, Exists: true})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unsubscribe()
	unsubscribe() // second call is a no-op

	hub.NotifyDoc(Snapshot{Path: path, Exists: true})
	if calls != 1 {
		t.Fatalf("calls after unsubscribe = %d, want 1", calls)
	}
}

func TestHubCollectionNotification(t *testing.T) {
	hub := NewHub()

	var notified int
	unsubscribe := hub.SubscribeCollection("games/g1/characters", func() { notified++ })
	defer unsubscribe()

	hub.NotifyDoc(Snapshot{Path: Path{Collection: "games/g1/characters", ID: "c1"}, Exists: true})
	if notified != 1 {
		t.Fatalf("notified = %d, want 1", notified)
	}

	// Changes in other collections do not wake this watcher.
	hub.NotifyDoc(Snapshot{Path: Path{Collection: "games/g2/characters", ID: "c9"}, Exists: true})
	if notified != 1 {
		t.Fatalf("notified after unrelated change = %d, want 1", notified)
	}
}

func TestHubReentrantNotifyQueuesBehindDelivery(t *testing.T) {
	hub := NewHub()
	path := Path{Collection: "games", ID: "g1"}

	var seen []bool
	unsubscribe := hub.SubscribeDoc(path.String(), func(snap Snapshot) {
		seen = append(seen, snap.Exists)
		if len(seen) == 1 {
			// A consumer reacting to a change by writing again must not
			// deadlock; the nested notification queues behind this one.
			hub.NotifyDoc(Snapshot{Path: path, Exists: false})
		}
	})
	defer unsubscribe()

	hub.NotifyDoc(Snapshot{Path: path, Exists: true})

	if len(seen) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(seen))
	}
	if !seen[0] || seen[1] {
		t.Fatalf("delivery order = %v, want [true false]", seen)
	}
}

func TestHubUnsubscribeFromInsideCallback(t *testing.T) {
	hub := NewHub()
	path := Path{Collection: "games", ID: "g1"}

	var calls int
	var unsubscribe Unsubscribe
	unsubscribe = hub.SubscribeDoc(path.String(), func(Snapshot) {
		calls++
		unsubscribe()
	})

	hub.NotifyDoc(Snapshot{Path: path, Exists: true})
	hub.NotifyDoc(Snapshot{Path: path, Exists: true})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
