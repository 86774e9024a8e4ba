package store

import (
	"encoding/json"
	"testing"
)

func TestEventRepository_AppendAndList(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	records := []*EventRecord{
		{GestureType: "TAP", Parameters: json.RawMessage(`{"x": 100, "y": 200}`), Confidence: 0.98, TimestampMS: 1000},
		{GestureType: "DRAG", Parameters: json.RawMessage(`{"x": 150, "y": 250}`), Confidence: 0.9, TimestampMS: 2000},
		{GestureType: "TAP", Parameters: json.RawMessage(`{"x": 100, "y": 200}`), Confidence: 0.98, TimestampMS: 3000},
	}

	for _, e := range records {
		if err := repo.Append(e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("expected Append to set the record ID")
		}
	}

	t.Run("ListRecent", func(t *testing.T) {
		events, err := repo.ListRecent(2)
		if err != nil {
			t.Fatalf("ListRecent() error = %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		// Newest first.
		if events[0].TimestampMS != 3000 || events[1].TimestampMS != 2000 {
			t.Errorf("expected newest-first ordering, got %d then %d",
				events[0].TimestampMS, events[1].TimestampMS)
		}
	})

	t.Run("CountByType", func(t *testing.T) {
		counts, err := repo.CountByType()
		if err != nil {
			t.Fatalf("CountByType() error = %v", err)
		}
		if counts["TAP"] != 2 || counts["DRAG"] != 1 {
			t.Errorf("unexpected counts: %v", counts)
		}
	})

	t.Run("DeleteBefore", func(t *testing.T) {
		deleted, err := repo.DeleteBefore(2500)
		if err != nil {
			t.Fatalf("DeleteBefore() error = %v", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deleted, got %d", deleted)
		}

		remaining, err := repo.ListRecent(10)
		if err != nil {
			t.Fatalf("ListRecent() error = %v", err)
		}
		if len(remaining) != 1 || remaining[0].TimestampMS != 3000 {
			t.Errorf("expected only the newest event to remain, got %d", len(remaining))
		}
	})
}
