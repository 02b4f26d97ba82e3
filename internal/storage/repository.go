// ABOUTME: Repository interface for habit and trigger event storage.
// ABOUTME: Defines contract for CRUD operations and per-day / per-month count queries.
package storage

import (
	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
)

// Repository defines the storage interface for habit data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Habit operations
	CreateHabit(h *models.Habit) error
	GetHabit(idOrPrefix string) (*models.Habit, error)
	ListHabits(includeInactive bool) ([]*models.Habit, error)
	UpdateHabit(h *models.Habit) error
	DeactivateHabit(idOrPrefix string) error
	DeleteHabit(idOrPrefix string) error
	FirstActiveHabit() (*models.Habit, error)
	LimitFor(habitID uuid.UUID) int
	SeedDefaultHabits() error

	// Trigger event operations
	CreateTrigger(e *models.TriggerEvent) error
	GetTrigger(idOrPrefix string) (*models.TriggerEvent, error)
	ListTriggersByDate(habitID uuid.UUID, date string) ([]*models.TriggerEvent, error)
	ListTriggersInRange(habitID uuid.UUID, startDate, endDate string) ([]*models.TriggerEvent, error)
	UpdateTrigger(e *models.TriggerEvent) error
	DeleteTrigger(idOrPrefix string) error

	// Count queries
	CountByDate(habitID uuid.UUID, date string) (int, error)
	DailyCounts(habitID uuid.UUID, year, month int) (map[string]int, error)
	MonthlyCounts(habitID uuid.UUID, year int) (map[string]int, error)

	// Lifecycle
	Close() error
}
