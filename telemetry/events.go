// Package telemetry provides gameplay event tracking, window statistics and
// performance timing with CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventRollbackX EventType = iota
	EventRollbackY
	EventJump
	EventBushSlow
	EventDeath
	EventWin
	EventPurge
)

var eventNames = [...]string{
	EventRollbackX: "rollback_x",
	EventRollbackY: "rollback_y",
	EventJump:      "jump",
	EventBushSlow:  "bush_slow",
	EventDeath:     "death",
	EventWin:       "win",
	EventPurge:     "purge",
}

// String returns the event name used in logs and CSV.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32

	// Optional fields depending on event type
	X, Y   float64 // subject position when the event fired
	Amount float64 // jump velocity, or number of purged colliders
}

// NewRollbackEvent creates a rollback event for one axis. Only X and Y
// rollbacks exist; vertical selects which.
func NewRollbackEvent(tick int32, entityID uint32, vertical bool, x, y float64) Event {
	t := EventRollbackX
	if vertical {
		t = EventRollbackY
	}
	return Event{Type: t, Tick: tick, EntityID: entityID, X: x, Y: y}
}

// NewJumpEvent creates a jump event with the applied vertical velocity.
func NewJumpEvent(tick int32, entityID uint32, velocity float64) Event {
	return Event{Type: EventJump, Tick: tick, EntityID: entityID, Amount: velocity}
}

// NewBushSlowEvent records the player entering bushes.
func NewBushSlowEvent(tick int32, entityID uint32) Event {
	return Event{Type: EventBushSlow, Tick: tick, EntityID: entityID}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int32, entityID uint32, x, y float64) Event {
	return Event{Type: EventDeath, Tick: tick, EntityID: entityID, X: x, Y: y}
}

// NewWinEvent creates a win event.
func NewWinEvent(tick int32, entityID uint32, x, y float64) Event {
	return Event{Type: EventWin, Tick: tick, EntityID: entityID, X: x, Y: y}
}

// NewPurgeEvent records colliders dropped from the index.
func NewPurgeEvent(tick int32, purged int) Event {
	return Event{Type: EventPurge, Tick: tick, Amount: float64(purged)}
}

// EventRecord is the CSV row for an event.
type EventRecord struct {
	RunID    string  `csv:"run_id"`
	Tick     int32   `csv:"tick"`
	Type     string  `csv:"type"`
	EntityID uint32  `csv:"entity"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Amount   float64 `csv:"amount"`
}

// Record converts the event to a CSV row.
func (e Event) Record(runID string) EventRecord {
	return EventRecord{
		RunID:    runID,
		Tick:     e.Tick,
		Type:     e.Type.String(),
		EntityID: e.EntityID,
		X:        e.X,
		Y:        e.Y,
		Amount:   e.Amount,
	}
}
