// ABOUTME: Picks the habit a command or tool call acts on.
// ABOUTME: Explicit choice first, then the configured current habit, then the first active habit.
package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
)

// ErrNoActiveHabit is returned by ResolveHabit when there is nothing to fall back to.
var ErrNoActiveHabit = fmt.Errorf("%w: no active habits", ErrNotFound)

// HabitFinder is the part of Repository ResolveHabit needs.
type HabitFinder interface {
	GetHabit(idOrPrefix string) (*models.Habit, error)
	FirstActiveHabit() (*models.Habit, error)
}

// ResolveHabit returns the explicit habit if one is named, which must exist but
// may be disabled. Otherwise the configured habit is used while it exists and is
// active; a stale or disabled one is skipped for the first active habit.
func ResolveHabit(repo HabitFinder, explicit, configured string) (*models.Habit, error) {
	if explicit != "" {
		h, err := repo.GetHabit(explicit)
		if err != nil {
			return nil, fmt.Errorf("habit %s: %w", explicit, err)
		}
		return h, nil
	}

	if configured != "" {
		h, err := repo.GetHabit(configured)
		switch {
		case err != nil:
			logger.Warn("configured habit not found, using first active", "habit", configured, "error", err)
		case !h.Active:
			logger.Warn("configured habit is disabled, using first active", "habit", configured)
		default:
			return h, nil
		}
	}

	h, err := repo.FirstActiveHabit()
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoActiveHabit
	}
	return h, err
}
