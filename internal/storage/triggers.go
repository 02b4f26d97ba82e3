// ABOUTME: Trigger event CRUD and count queries for SQLite storage.
// ABOUTME: Stamps per-day sequence numbers at insertion and aggregates counts by day and month.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/calendar"
	"github.com/harperreed/habits/internal/models"
)

const triggerColumns = `id, habit_id, trigger_date, trigger_time, triggered_at, description, sequence_number, created_at`

// CreateTrigger stores a new trigger event and stamps its sequence number.
//
// The sequence is the count of the habit's existing events on the same day
// plus one, computed in the same transaction as the insert. It is never
// recomputed afterwards.
func (d *DB) CreateTrigger(e *models.TriggerEvent) error {
	if _, err := calendar.ParseDate(e.Date); err != nil {
		return fmt.Errorf("create trigger: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		var existing int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM trigger_events
			WHERE habit_id = ? AND trigger_date = ?
		`, e.HabitID.String(), e.Date).Scan(&existing)
		if err != nil {
			return fmt.Errorf("count same-day triggers: %w", err)
		}

		seq := existing + 1
		_, err = tx.Exec(`
			INSERT INTO trigger_events (id, habit_id, trigger_date, trigger_time, triggered_at, description, sequence_number, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.ID.String(),
			e.HabitID.String(),
			e.Date,
			e.Time,
			e.TriggeredAt.Format(time.RFC3339),
			e.Description,
			seq,
			e.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("create trigger: %w", err)
		}
		e.Sequence = seq
		return nil
	})
}

// GetTrigger retrieves a trigger event by ID or ID prefix.
func (d *DB) GetTrigger(idOrPrefix string) (*models.TriggerEvent, error) {
	id, err := d.resolveID("trigger_events", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return d.scanTrigger(d.db.QueryRow(`SELECT `+triggerColumns+` FROM trigger_events WHERE id = ?`, id))
}

// ListTriggersByDate returns one day's events ordered by time of day.
func (d *DB) ListTriggersByDate(habitID uuid.UUID, date string) ([]*models.TriggerEvent, error) {
	return d.queryTriggers("list triggers by date", `
		SELECT `+triggerColumns+`
		FROM trigger_events
		WHERE habit_id = ? AND trigger_date = ?
		ORDER BY trigger_time ASC, sequence_number ASC
	`, habitID.String(), date)
}

// ListTriggersInRange returns events with startDate <= date <= endDate in chronological order.
func (d *DB) ListTriggersInRange(habitID uuid.UUID, startDate, endDate string) ([]*models.TriggerEvent, error) {
	return d.queryTriggers("list triggers in range", `
		SELECT `+triggerColumns+`
		FROM trigger_events
		WHERE habit_id = ? AND trigger_date >= ? AND trigger_date <= ?
		ORDER BY triggered_at ASC, sequence_number ASC
	`, habitID.String(), startDate, endDate)
}

// UpdateTrigger persists time-of-day and description changes. Date and sequence are fixed.
func (d *DB) UpdateTrigger(e *models.TriggerEvent) error {
	if _, err := time.Parse(models.TimeFormat, e.Time); err != nil {
		return fmt.Errorf("update trigger: invalid time %q (want HH:MM)", e.Time)
	}
	result, err := d.db.Exec(`
		UPDATE trigger_events SET trigger_time = ?, triggered_at = ?, description = ?
		WHERE id = ?
	`, e.Time, e.TriggeredAt.Format(time.RFC3339), e.Description, e.ID.String())
	if err != nil {
		return fmt.Errorf("update trigger: %w", err)
	}
	return requireAffected(result, e.ID.String())
}

// DeleteTrigger removes a trigger event by ID or prefix. Later events keep their sequence numbers.
func (d *DB) DeleteTrigger(idOrPrefix string) error {
	id, err := d.resolveID("trigger_events", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete trigger: %w", err)
	}
	result, err := d.db.Exec(`DELETE FROM trigger_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trigger: %w", err)
	}
	return requireAffected(result, idOrPrefix)
}

// CountByDate returns the number of events the habit has on date.
func (d *DB) CountByDate(habitID uuid.UUID, date string) (int, error) {
	var n int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM trigger_events
		WHERE habit_id = ? AND trigger_date = ?
	`, habitID.String(), date).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count triggers: %w", err)
	}
	return n, nil
}

// DailyCounts returns a sparse YYYY-MM-DD -> count map for one month.
func (d *DB) DailyCounts(habitID uuid.UUID, year, month int) (map[string]int, error) {
	return d.groupCounts("daily counts", `
		SELECT trigger_date, COUNT(*)
		FROM trigger_events
		WHERE habit_id = ? AND trigger_date LIKE ? || '-%'
		GROUP BY trigger_date
	`, habitID.String(), calendar.FormatMonth(year, month))
}

// MonthlyCounts returns a sparse YYYY-MM -> count map for one year.
func (d *DB) MonthlyCounts(habitID uuid.UUID, year int) (map[string]int, error) {
	return d.groupCounts("monthly counts", `
		SELECT substr(trigger_date, 1, 7) AS month, COUNT(*)
		FROM trigger_events
		WHERE habit_id = ? AND trigger_date LIKE ? || '-%'
		GROUP BY month
		ORDER BY month
	`, habitID.String(), fmt.Sprintf("%04d", year))
}

func (d *DB) groupCounts(op, query string, args ...interface{}) (map[string]int, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func (d *DB) queryTriggers(op, query string, args ...interface{}) ([]*models.TriggerEvent, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []*models.TriggerEvent
	for rows.Next() {
		e, err := d.scanTrigger(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// scanTrigger scans a single row into a TriggerEvent struct.
func (d *DB) scanTrigger(row scanner) (*models.TriggerEvent, error) {
	var e models.TriggerEvent
	var idStr, habitStr, triggeredAt, createdAt string
	var desc sql.NullString

	err := row.Scan(&idStr, &habitStr, &e.Date, &e.Time, &triggeredAt, &desc, &e.Sequence, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan trigger: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.HabitID, _ = uuid.Parse(habitStr)
	e.TriggeredAt, _ = time.Parse(time.RFC3339, triggeredAt)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if desc.Valid {
		e.Description = &desc.String
	}
	return &e, nil
}
