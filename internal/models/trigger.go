// ABOUTME: TriggerEvent model for a single logged occurrence of a habit.
// ABOUTME: Carries calendar day, time of day, optional description and a stamp-once sequence number.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TriggerEvent is one logged occurrence of a habit.
//
// Sequence is the 1-based rank among the habit's events on the same day at the
// moment of insertion. It is stamped once by the store and never renumbered, so
// deleting an earlier event leaves a gap.
type TriggerEvent struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	HabitID     uuid.UUID `json:"habit_id" yaml:"habit_id"`
	Date        string    `json:"date" yaml:"date"`
	Time        string    `json:"time" yaml:"time"`
	TriggeredAt time.Time `json:"triggered_at" yaml:"triggered_at"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Sequence    int       `json:"sequence" yaml:"sequence"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewTriggerEvent creates an event for habitID occurring now.
func NewTriggerEvent(habitID uuid.UUID) *TriggerEvent {
	now := time.Now()
	e := &TriggerEvent{
		ID:        uuid.New(),
		HabitID:   habitID,
		CreatedAt: now,
	}
	return e.WithTriggeredAt(now)
}

// WithTriggeredAt moves the event to t, updating its day and time strings.
func (e *TriggerEvent) WithTriggeredAt(t time.Time) *TriggerEvent {
	e.TriggeredAt = t.Truncate(time.Minute)
	e.Date = t.Format(DateFormat)
	e.Time = t.Format(TimeFormat)
	return e
}

// WithDescription sets the free-text description.
func (e *TriggerEvent) WithDescription(desc string) *TriggerEvent {
	e.Description = &desc
	return e
}

// ShortID returns the 8-character ID prefix shown in listings.
func (e *TriggerEvent) ShortID() string {
	return e.ID.String()[:8]
}
