package live

import (
	"context"
	"sort"
	"sync"

	"github.com/greathall/greathall/internal/characters"
	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/sheet"
)

// RosterEntry is one character in a collection emission. The collection
// does not wait for private sheets before emitting, so an entry may carry
// only its public half; SheetLoaded reports whether the private stream
// has delivered yet.
type RosterEntry struct {
	sheet.Character
	SheetLoaded bool
}

// SubscribeGameCharacters watches the set of characters visible to a
// viewer (every character for the GM, owned characters otherwise) and
// manages one private-sheet subscription per member id. The roster is
// re-emitted, sorted by name, whenever the member set changes or any
// private sheet updates. Ids that leave the set tear down their private
// subscription exactly once and vanish from subsequent emissions.
func SubscribeGameCharacters(ctx context.Context, store docstore.Store, gameID, viewerID string, isGM bool, onChange func([]RosterEntry), onError func(error)) (docstore.Unsubscribe, error) {
	var filter docstore.Filter
	if !isGM {
		filter = docstore.FieldEquals("ownerId", viewerID)
	}

	c := &collectionSync{
		ctx:      ctx,
		store:    store,
		gameID:   gameID,
		onChange: onChange,
		onError:  onError,
		entries:  make(map[string]*rosterState),
	}

	outerUnsub, err := store.WatchQuery(ctx, characters.PublicCollection(gameID), filter, c.onMembers, c.onOuterError)
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.closed = true
			inner := make([]docstore.Unsubscribe, 0, len(c.entries))
			for _, entry := range c.entries {
				inner = append(inner, entry.unsubscribe)
			}
			c.entries = make(map[string]*rosterState)
			c.mu.Unlock()

			outerUnsub()
			for _, unsubscribe := range inner {
				if unsubscribe != nil {
					unsubscribe()
				}
			}
		})
	}, nil
}

type rosterState struct {
	profile     sheet.PublicProfile
	priv        *sheet.PrivateSheet
	sheetLoaded bool
	unsubscribe docstore.Unsubscribe
}

type collectionSync struct {
	mu       sync.Mutex
	ctx      context.Context
	store    docstore.Store
	gameID   string
	onChange func([]RosterEntry)
	onError  func(error)
	entries  map[string]*rosterState
	closed   bool
}

// onMembers handles each emission of the visible member set: snapshot the
// incoming id set, tear down entries that left it, refresh public data,
// and open private subscriptions for new ids.
func (c *collectionSync) onMembers(snaps []docstore.Snapshot) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	current := make(map[string]docstore.Snapshot, len(snaps))
	for _, snap := range snaps {
		current[snap.Path.ID] = snap
	}

	var removed []docstore.Unsubscribe
	for id, entry := range c.entries {
		if _, ok := current[id]; !ok {
			removed = append(removed, entry.unsubscribe)
			delete(c.entries, id)
		}
	}

	var added []string
	var decodeErrs []error
	for id, snap := range current {
		profile, err := characters.DecodeProfile(snap)
		if err != nil {
			decodeErrs = append(decodeErrs, err)
			continue
		}
		entry, ok := c.entries[id]
		if !ok {
			entry = &rosterState{}
			c.entries[id] = entry
			added = append(added, id)
		}
		entry.profile = profile
	}

	roster, onChange, onError := c.rosterLocked()
	c.mu.Unlock()

	for _, unsubscribe := range removed {
		if unsubscribe != nil {
			unsubscribe()
		}
	}
	for _, err := range decodeErrs {
		if onError != nil {
			onError(err)
		}
	}
	// Emit before opening private watches: their initial deliveries
	// re-emit through onPrivate against the then-current entry set, so
	// this snapshot never lands after fresher data.
	onChange(roster)
	for _, id := range added {
		c.watchPrivate(id)
	}
}

func (c *collectionSync) onOuterError(err error) {
	c.mu.Lock()
	closed := c.closed
	onError := c.onError
	c.mu.Unlock()
	if !closed && onError != nil {
		onError(err)
	}
}

// watchPrivate opens the private-sheet subscription for one member. Late
// callbacks for ids that have since left the set are discarded by the
// entry lookup.
func (c *collectionSync) watchPrivate(id string) {
	unsubscribe, err := c.store.Watch(c.ctx, characters.PrivatePath(c.gameID, id),
		func(snap docstore.Snapshot) { c.onPrivate(id, snap) },
		func(err error) { c.onOuterError(err) },
	)
	if err != nil {
		c.onOuterError(err)
		return
	}

	c.mu.Lock()
	entry, ok := c.entries[id]
	if !ok || c.closed {
		// The id left the set while the subscription was opening.
		c.mu.Unlock()
		unsubscribe()
		return
	}
	entry.unsubscribe = unsubscribe
	c.mu.Unlock()
}

func (c *collectionSync) onPrivate(id string, snap docstore.Snapshot) {
	c.mu.Lock()
	entry, ok := c.entries[id]
	if !ok || c.closed {
		c.mu.Unlock()
		return
	}

	entry.sheetLoaded = true
	if !snap.Exists {
		entry.priv = nil
	} else if priv, err := characters.DecodeSheet(snap); err != nil {
		onError := c.onError
		c.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	} else {
		entry.priv = &priv
	}

	roster, onChange, _ := c.rosterLocked()
	c.mu.Unlock()
	onChange(roster)
}

func (c *collectionSync) rosterLocked() ([]RosterEntry, func([]RosterEntry), func(error)) {
	roster := make([]RosterEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		re := RosterEntry{SheetLoaded: entry.sheetLoaded}
		re.PublicProfile = entry.profile
		if entry.priv != nil {
			re.PrivateSheet = *entry.priv
		}
		roster = append(roster, re)
	}
	sort.Slice(roster, func(i, j int) bool {
		if roster[i].Name != roster[j].Name {
			return roster[i].Name < roster[j].Name
		}
		return roster[i].ID < roster[j].ID
	})
	return roster, c.onChange, c.onError
}
