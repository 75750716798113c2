// Package telemetry records operational events, such as data integrity
// anomalies, as documents for audits and incident analysis.
package telemetry

import (
	"context"
	"time"

	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/platform/id"
)

// Collection is the docstore collection holding telemetry events.
const Collection = "telemetry"

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event is one operational telemetry record.
type Event struct {
	Timestamp   time.Time         `json:"-"`
	EventName   string            `json:"eventName"`
	Severity    Severity          `json:"severity"`
	GameID      string            `json:"gameId,omitempty"`
	CharacterID string            `json:"characterId,omitempty"`
	ActorID     string            `json:"actorId,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Emitter appends telemetry events to a document store.
type Emitter struct {
	store docstore.Store
	clock func() time.Time
	newID func() (string, error)
}

// NewEmitter creates a telemetry emitter backed by store. A nil store
// yields an emitter whose Emit is a no-op.
func NewEmitter(store docstore.Store) *Emitter {
	return &Emitter{store: store, clock: time.Now, newID: id.NewID}
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil, so callers never need to guard emission sites.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	eventID, err := e.newID()
	if err != nil {
		return err
	}
	data, err := docstore.Encode(evt)
	if err != nil {
		return err
	}
	data["timestamp"] = evt.Timestamp.UnixMilli()
	return e.store.Set(ctx, docstore.Path{Collection: Collection, ID: eventID}, data)
}
