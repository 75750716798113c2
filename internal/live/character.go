// Package live merges a character's public and private document streams
// into consistent snapshots. The single-entity form waits for both
// streams to load before its first emission; the collection form emits
// optimistically while per-character detail loads progressively.
package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/greathall/greathall/internal/characters"
	"github.com/greathall/greathall/internal/docstore"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
	"github.com/greathall/greathall/internal/sheet"
)

// SubscribeCharacter opens paired subscriptions to a character's public
// and private documents and emits the merged character on every change
// from either stream, once both have delivered at least one event. An
// absent delivery counts as a delivery. onChange receives nil when the
// character is absent or has no private sheet; the missing-sheet anomaly
// is additionally reported once through onError.
//
// A failed stream is reported through onError and then treated as
// terminally empty; emissions continue from the last-known value of the
// other stream. The returned unsubscribe releases both subscriptions and
// is safe to call more than once.
func SubscribeCharacter(ctx context.Context, store docstore.Store, gameID, characterID string, onChange func(*sheet.Character), onError func(error)) (docstore.Unsubscribe, error) {
	s := &characterSync{
		characterID: characterID,
		onChange:    onChange,
		onError:     onError,
	}

	pubUnsub, err := store.Watch(ctx, characters.PublicPath(gameID, characterID), s.onPublic, s.onPublicError)
	if err != nil {
		return nil, err
	}
	privUnsub, err := store.Watch(ctx, characters.PrivatePath(gameID, characterID), s.onPrivate, s.onPrivateError)
	if err != nil {
		pubUnsub()
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()
			pubUnsub()
			privUnsub()
		})
	}, nil
}

type characterSync struct {
	mu          sync.Mutex
	characterID string
	onChange    func(*sheet.Character)
	onError     func(error)

	pub           *sheet.PublicProfile
	priv          *sheet.PrivateSheet
	pubLoaded     bool
	privLoaded    bool
	missingWarned bool
	closed        bool
}

func (s *characterSync) onPublic(snap docstore.Snapshot) {
	s.mu.Lock()
	s.pubLoaded = true
	var decodeErr error
	if !snap.Exists {
		s.pub = nil
	} else if profile, err := characters.DecodeProfile(snap); err != nil {
		decodeErr = err
	} else {
		s.pub = &profile
	}
	s.finishLocked(decodeErr)
}

func (s *characterSync) onPrivate(snap docstore.Snapshot) {
	s.mu.Lock()
	s.privLoaded = true
	var decodeErr error
	if !snap.Exists {
		s.priv = nil
	} else if priv, err := characters.DecodeSheet(snap); err != nil {
		decodeErr = err
	} else {
		s.priv = &priv
	}
	s.finishLocked(decodeErr)
}

// Stream errors latch the affected side as loaded so the other stream's
// last-known value keeps flowing.
func (s *characterSync) onPublicError(err error) {
	s.mu.Lock()
	s.pubLoaded = true
	s.finishLocked(err)
}

func (s *characterSync) onPrivateError(err error) {
	s.mu.Lock()
	s.privLoaded = true
	s.finishLocked(err)
}

// finishLocked decides what to emit, releases the lock, then invokes the
// consumer callbacks. Callbacks run outside the lock so a consumer that
// mutates the store from inside one cannot deadlock the synchronizer.
func (s *characterSync) finishLocked(err error) {
	var (
		emit      bool
		merged    *sheet.Character
		reportErr = err
	)

	if !s.closed && s.pubLoaded && s.privLoaded {
		emit = true
		switch {
		case s.pub != nil && s.priv != nil:
			c := sheet.Merge(*s.pub, *s.priv)
			merged = &c
		case s.pub != nil:
			// Public without private is an integrity anomaly, not a
			// half-populated character. Warn once, surface as absent.
			if !s.missingWarned && reportErr == nil {
				s.missingWarned = true
				reportErr = apperrors.WithMetadata(apperrors.CodeCharacterMissingSheet,
					fmt.Sprintf("character %s has no private sheet", s.characterID),
					map[string]string{"CharacterID": s.characterID})
			}
		}
	}
	closed := s.closed
	onChange, onError := s.onChange, s.onError
	s.mu.Unlock()

	if closed {
		return
	}
	if reportErr != nil && onError != nil {
		onError(reportErr)
	}
	if emit {
		onChange(merged)
	}
}
