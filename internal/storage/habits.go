// ABOUTME: Habit CRUD operations for SQLite storage.
// ABOUTME: Implements soft and permanent deletion, limit lookup, and default seeding.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/models"
)

const habitColumns = `id, name, daily_limit, created_date, is_active, created_at`

// defaultHabits are created in a brand new database.
var defaultHabits = []struct {
	name  string
	limit int
}{
	{"Smoking", 5},
	{"Late-night phone use", 3},
}

// CreateHabit stores a new habit.
func (d *DB) CreateHabit(h *models.Habit) error {
	if h.DailyLimit <= 0 {
		return models.ErrInvalidLimit
	}
	query := `
		INSERT INTO habits (id, name, daily_limit, created_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		h.ID.String(),
		h.Name,
		h.DailyLimit,
		h.CreatedDate,
		boolToInt(h.Active),
		h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// SeedDefaultHabits inserts the starter habits.
func (d *DB) SeedDefaultHabits() error {
	for _, dh := range defaultHabits {
		h, err := models.NewHabit(dh.name, dh.limit)
		if err != nil {
			return err
		}
		if err := d.CreateHabit(h); err != nil {
			return fmt.Errorf("seed habit %q: %w", dh.name, err)
		}
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (d *DB) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := d.resolveID("habits", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return d.scanHabit(d.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
}

// ListHabits returns habits in creation order, optionally including inactive ones.
func (d *DB) ListHabits(includeInactive bool) ([]*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY rowid`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		h, err := d.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// UpdateHabit persists name, limit and active flag changes.
func (d *DB) UpdateHabit(h *models.Habit) error {
	if h.DailyLimit <= 0 {
		return models.ErrInvalidLimit
	}
	result, err := d.db.Exec(`
		UPDATE habits SET name = ?, daily_limit = ?, is_active = ?
		WHERE id = ?
	`, h.Name, h.DailyLimit, boolToInt(h.Active), h.ID.String())
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return requireAffected(result, h.ID.String())
}

// DeactivateHabit soft-deletes a habit, keeping its events.
func (d *DB) DeactivateHabit(idOrPrefix string) error {
	id, err := d.resolveID("habits", idOrPrefix)
	if err != nil {
		return fmt.Errorf("deactivate habit: %w", err)
	}
	result, err := d.db.Exec(`UPDATE habits SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate habit: %w", err)
	}
	return requireAffected(result, idOrPrefix)
}

// DeleteHabit permanently removes a habit and all of its trigger events.
func (d *DB) DeleteHabit(idOrPrefix string) error {
	id, err := d.resolveID("habits", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM trigger_events WHERE habit_id = ?`, id); err != nil {
			return fmt.Errorf("delete habit events: %w", err)
		}
		result, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}
		return requireAffected(result, idOrPrefix)
	})
}

// FirstActiveHabit returns the oldest active habit.
func (d *DB) FirstActiveHabit() (*models.Habit, error) {
	h, err := d.scanHabit(d.db.QueryRow(`
		SELECT ` + habitColumns + ` FROM habits
		WHERE is_active = 1
		ORDER BY rowid
		LIMIT 1
	`))
	if err != nil {
		return nil, fmt.Errorf("first active habit: %w", err)
	}
	return h, nil
}

// LimitFor returns the habit's daily limit, or models.DefaultDailyLimit when the habit is missing.
func (d *DB) LimitFor(habitID uuid.UUID) int {
	var limit int
	err := d.db.QueryRow(`SELECT daily_limit FROM habits WHERE id = ?`, habitID.String()).Scan(&limit)
	if err != nil {
		logger.Debug("habit limit lookup failed, using default", "habit", habitID, "error", err)
		return models.DefaultDailyLimit
	}
	return limit
}

// resolveID finds the full ID in table from a full ID or unique prefix.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty ID", ErrNotFound)
	}

	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	// Search by prefix
	// substr, not LIKE, so % and _ in user input match literally.
	query := `SELECT id FROM ` + table + ` WHERE substr(id, 1, ?) = ?`
	rows, err := d.db.Query(query, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches %d records", ErrAmbiguousID, idOrPrefix, len(matches))
	}

	return matches[0], nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanHabit scans a single row into a Habit struct.
func (d *DB) scanHabit(row scanner) (*models.Habit, error) {
	var h models.Habit
	var idStr, createdAt string
	var active int

	err := row.Scan(&idStr, &h.Name, &h.DailyLimit, &h.CreatedDate, &active, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.ID, _ = uuid.Parse(idStr)
	h.Active = active != 0
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &h, nil
}

func requireAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
