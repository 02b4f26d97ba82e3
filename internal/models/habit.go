// ABOUTME: Habit model for user-defined bad habits with a daily limit.
// ABOUTME: Provides constructor, validation, and mutation helpers.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDailyLimit is the limit used for new habits and for lookups of missing habits.
const DefaultDailyLimit = 5

// DateFormat is the layout of calendar-day strings (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// TimeFormat is the layout of time-of-day strings (HH:MM).
const TimeFormat = "15:04"

var (
	// ErrEmptyName is returned when a habit name is blank.
	ErrEmptyName = errors.New("habit name must not be empty")
	// ErrInvalidLimit is returned when a daily limit is not positive.
	ErrInvalidLimit = errors.New("daily limit must be greater than zero")
)

// Habit is a tracked behavior with a daily occurrence limit.
type Habit struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	DailyLimit  int       `json:"daily_limit" yaml:"daily_limit"`
	CreatedDate string    `json:"created_date" yaml:"created_date"`
	Active      bool      `json:"active" yaml:"active"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewHabit creates an active Habit created today.
func NewHabit(name string, dailyLimit int) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if dailyLimit <= 0 {
		return nil, ErrInvalidLimit
	}
	now := time.Now()
	return &Habit{
		ID:          uuid.New(),
		Name:        name,
		DailyLimit:  dailyLimit,
		CreatedDate: now.Format(DateFormat),
		Active:      true,
		CreatedAt:   now,
	}, nil
}

// Rename changes the display name.
func (h *Habit) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	h.Name = name
	return nil
}

// SetLimit changes the daily limit.
func (h *Habit) SetLimit(limit int) error {
	if limit <= 0 {
		return ErrInvalidLimit
	}
	h.DailyLimit = limit
	return nil
}

// ShortID returns the 8-character ID prefix shown in listings.
func (h *Habit) ShortID() string {
	return h.ID.String()[:8]
}
