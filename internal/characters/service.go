// Package characters coordinates reads and writes across a character's
// split public and private documents.
package characters

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/greathall/greathall/internal/docstore"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
	"github.com/greathall/greathall/internal/platform/id"
	"github.com/greathall/greathall/internal/sheet"
	"github.com/greathall/greathall/internal/telemetry"
)

// Service owns character persistence: creation and deletion touch both
// document halves atomically, reads merge them, and updates route each
// field to the half that owns it.
type Service struct {
	store   docstore.Store
	emitter *telemetry.Emitter
	now     func() time.Time
	newID   func() (string, error)
}

// NewService creates a character service on top of a document store. The
// emitter may be nil; integrity anomalies are then not recorded.
func NewService(store docstore.Store, emitter *telemetry.Emitter) *Service {
	return &Service{
		store:   store,
		emitter: emitter,
		now:     time.Now,
		newID:   id.NewID,
	}
}

// Create validates the input, assigns an id and timestamps, and writes
// both document halves in one atomic batch.
func (s *Service) Create(ctx context.Context, input sheet.NewCharacterInput) (sheet.Character, error) {
	character, err := sheet.NewCharacter(input)
	if err != nil {
		return sheet.Character{}, err
	}

	characterID, err := s.newID()
	if err != nil {
		return sheet.Character{}, fmt.Errorf("generate character id: %w", err)
	}
	now := s.now().UnixMilli()
	character.ID = characterID
	character.CreatedAt = now
	character.UpdatedAt = now

	profile, priv := character.Split()
	pubData, err := EncodeProfile(profile)
	if err != nil {
		return sheet.Character{}, err
	}
	privData, err := EncodeSheet(priv)
	if err != nil {
		return sheet.Character{}, err
	}

	writes := []docstore.Write{
		{Kind: docstore.WriteSet, Path: PublicPath(character.GameID, characterID), Data: pubData},
		{Kind: docstore.WriteSet, Path: PrivatePath(character.GameID, characterID), Data: privData},
	}
	if err := s.store.Apply(ctx, writes); err != nil {
		return sheet.Character{}, err
	}
	return character, nil
}

// Get reads and merges both halves of a character. A missing public
// document is plain absence. A public document without its private sheet
// is an integrity anomaly: it is recorded as a telemetry warning and
// reported to the caller as absence, never as a half-populated character.
func (s *Service) Get(ctx context.Context, gameID, characterID string) (sheet.Character, error) {
	pubSnap, err := s.store.Get(ctx, PublicPath(gameID, characterID))
	if err != nil {
		return sheet.Character{}, err
	}
	if !pubSnap.Exists {
		return sheet.Character{}, notFound(gameID, characterID)
	}

	privSnap, err := s.store.Get(ctx, PrivatePath(gameID, characterID))
	if err != nil {
		return sheet.Character{}, err
	}
	if !privSnap.Exists {
		_ = s.emitter.Emit(ctx, telemetry.Event{
			EventName:   "character.sheet.missing",
			Severity:    telemetry.SeverityWarn,
			GameID:      gameID,
			CharacterID: characterID,
		})
		return sheet.Character{}, notFound(gameID, characterID)
	}

	profile, err := DecodeProfile(pubSnap)
	if err != nil {
		return sheet.Character{}, err
	}
	priv, err := DecodeSheet(privSnap)
	if err != nil {
		return sheet.Character{}, err
	}
	return sheet.Merge(profile, priv), nil
}

// List returns every public profile in a game, sorted by name.
func (s *Service) List(ctx context.Context, gameID string) ([]sheet.PublicProfile, error) {
	snaps, err := s.store.List(ctx, PublicCollection(gameID))
	if err != nil {
		return nil, err
	}
	return decodeProfiles(snaps)
}

// ListOwned returns the public profiles a player owns in a game, sorted
// by name.
func (s *Service) ListOwned(ctx context.Context, gameID, ownerID string) ([]sheet.PublicProfile, error) {
	snaps, err := s.store.Query(ctx, PublicCollection(gameID), docstore.FieldEquals("ownerId", ownerID))
	if err != nil {
		return nil, err
	}
	return decodeProfiles(snaps)
}

// Delete removes both document halves in one atomic batch. Deleting an
// absent character is a no-op.
func (s *Service) Delete(ctx context.Context, gameID, characterID string) error {
	writes := []docstore.Write{
		{Kind: docstore.WriteDelete, Path: PublicPath(gameID, characterID)},
		{Kind: docstore.WriteDelete, Path: PrivatePath(gameID, characterID)},
	}
	return s.store.Apply(ctx, writes)
}

// Update applies a typed partial change. The update splits into its
// public and private halves, and the write shape follows from which
// halves are touched:
//
//   - both halves: one atomic batch writing both documents, with the
//     public updatedAt marker refreshed in the same batch.
//   - public only: one write to the public document, marker included.
//   - private only: the private document is written first, then the
//     public updatedAt marker is refreshed in a separate second write.
//
// The private-only shape is deliberately not atomic: collection watchers
// key off the public marker, and a reader may briefly observe the new
// sheet before the marker moves. Batching the two writes would serialize
// every private edit against the public document and is not worth it for
// a marker whose only consumer is change ordering.
func (s *Service) Update(ctx context.Context, gameID, characterID string, update sheet.Update) (sheet.Character, error) {
	pubPatch, privPatch := update.Split()
	if pubPatch.IsEmpty() && privPatch.IsEmpty() {
		return s.Get(ctx, gameID, characterID)
	}

	current, err := s.Get(ctx, gameID, characterID)
	if err != nil {
		return sheet.Character{}, err
	}
	profile, priv := current.Split()
	now := s.now().UnixMilli()

	switch {
	case !pubPatch.IsEmpty() && !privPatch.IsEmpty():
		profile = pubPatch.ApplyTo(profile)
		profile.UpdatedAt = now
		priv = privPatch.ApplyTo(priv)

		pubData, err := EncodeProfile(profile)
		if err != nil {
			return sheet.Character{}, err
		}
		privData, err := EncodeSheet(priv)
		if err != nil {
			return sheet.Character{}, err
		}
		writes := []docstore.Write{
			{Kind: docstore.WriteSet, Path: PublicPath(gameID, characterID), Data: pubData},
			{Kind: docstore.WriteSet, Path: PrivatePath(gameID, characterID), Data: privData},
		}
		if err := s.store.Apply(ctx, writes); err != nil {
			return sheet.Character{}, err
		}

	case !pubPatch.IsEmpty():
		profile = pubPatch.ApplyTo(profile)
		profile.UpdatedAt = now
		pubData, err := EncodeProfile(profile)
		if err != nil {
			return sheet.Character{}, err
		}
		if err := s.store.Set(ctx, PublicPath(gameID, characterID), pubData); err != nil {
			return sheet.Character{}, err
		}

	default:
		priv = privPatch.ApplyTo(priv)
		privData, err := EncodeSheet(priv)
		if err != nil {
			return sheet.Character{}, err
		}
		if err := s.store.Set(ctx, PrivatePath(gameID, characterID), privData); err != nil {
			return sheet.Character{}, err
		}
		profile.UpdatedAt = now
		if err := s.store.Merge(ctx, PublicPath(gameID, characterID), map[string]any{"updatedAt": now}); err != nil {
			return sheet.Character{}, err
		}
	}

	return sheet.Merge(profile, priv), nil
}

func decodeProfiles(snaps []docstore.Snapshot) ([]sheet.PublicProfile, error) {
	profiles := make([]sheet.PublicProfile, 0, len(snaps))
	for _, snap := range snaps {
		profile, err := DecodeProfile(snap)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

func notFound(gameID, characterID string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("character %s not found", characterID),
		map[string]string{"GameID": gameID, "CharacterID": characterID})
}
