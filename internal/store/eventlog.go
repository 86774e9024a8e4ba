package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// EventRecord is one classified gesture appended to the event log.
type EventRecord struct {
	ID          int64
	GestureType string
	Parameters  json.RawMessage
	Confidence  float64
	TimestampMS int64
	CreatedAt   time.Time
}

// EventRepository provides append and query operations on the gesture
// event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event log repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append inserts a classified gesture into the log and sets the record's ID.
func (r *EventRepository) Append(e *EventRecord) error {
	e.CreatedAt = time.Now()

	params := e.Parameters
	if params == nil {
		params = json.RawMessage("{}")
	}

	result, err := r.db.Exec(
		`INSERT INTO gesture_events (gesture_type, parameters, confidence, timestamp_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.GestureType, string(params), e.Confidence, e.TimestampMS, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// ListRecent retrieves the most recent events, newest first, up to limit.
func (r *EventRepository) ListRecent(limit int) ([]*EventRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture_type, parameters, confidence, timestamp_ms, created_at
		 FROM gesture_events ORDER BY timestamp_ms DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*EventRecord
	for rows.Next() {
		e := &EventRecord{}
		var params string

		err := rows.Scan(&e.ID, &e.GestureType, &params, &e.Confidence, &e.TimestampMS, &e.CreatedAt)
		if err != nil {
			return nil, err
		}

		e.Parameters = json.RawMessage(params)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByType returns the number of logged events per gesture type.
func (r *EventRepository) CountByType() (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT gesture_type, COUNT(*) FROM gesture_events GROUP BY gesture_type`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var gestureType string
		var count int
		if err := rows.Scan(&gestureType, &count); err != nil {
			return nil, err
		}
		counts[gestureType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// DeleteBefore removes events with a timestamp older than the given
// millisecond cutoff and returns the number deleted.
func (r *EventRepository) DeleteBefore(cutoffMS int64) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gesture_events WHERE timestamp_ms < ?`, cutoffMS)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
