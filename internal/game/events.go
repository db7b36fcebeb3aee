package game

import "github.com/tuckinterrors/terrors-sim/internal/cards"

// EventContext carries the details of the event an effect is reacting to.
// Replacement effects communicate back through the cancel flags; choice
// resolution records its selections here so later actions in the same
// effect can reference them.
type EventContext struct {
	Trigger           cards.TriggerKind
	SubjectInstanceID int
	FromZone          cards.Zone
	ToZone            cards.Zone

	// Sacrifice marks a leave-play event caused by a sacrifice.
	Sacrifice bool

	// CancelLeave and CancelMove are set by replacement effects to veto
	// the pending zone change.
	CancelLeave bool
	CancelMove  bool

	// ChosenInstanceID and ChosenNumber record the most recent choice
	// answer, consumed by follow-on actions with target "CHOSEN".
	ChosenInstanceID int
	ChosenNumber     int
}

func newEvent(trigger cards.TriggerKind, subjectID int) *EventContext {
	return &EventContext{
		Trigger:           trigger,
		SubjectInstanceID: subjectID,
	}
}
