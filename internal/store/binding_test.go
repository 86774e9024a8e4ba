package store

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBindingRepository_CRUD(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:          "b1",
		GestureType: "PINCH",
		PluginName:  "scene-control",
		ActionName:  "zoom",
		Config:      json.RawMessage(`{"sensitivity": 1.5}`),
		Enabled:     true,
	}

	if err := repo.Create(binding); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID("b1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.GestureType != "PINCH" || got.PluginName != "scene-control" {
			t.Errorf("unexpected binding: %+v", got)
		}
		if !got.Enabled {
			t.Error("expected binding to be enabled")
		}
	})

	t.Run("GetByGestureType", func(t *testing.T) {
		got, err := repo.GetByGestureType("PINCH")
		if err != nil {
			t.Fatalf("GetByGestureType() error = %v", err)
		}
		if got.ID != "b1" {
			t.Errorf("expected b1, got %q", got.ID)
		}
	})

	t.Run("Update", func(t *testing.T) {
		binding.ActionName = "scale"
		binding.Enabled = false
		if err := repo.Update(binding); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := repo.GetByID("b1")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.ActionName != "scale" || got.Enabled {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("DisabledBindingNotResolved", func(t *testing.T) {
		// b1 was disabled by the update above.
		_, err := repo.GetByGestureType("PINCH")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for disabled binding, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		bindings, err := repo.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(bindings) != 1 {
			t.Errorf("expected 1 binding, got %d", len(bindings))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete("b1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.GetByID("b1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestBindingRepository_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(&Binding{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
}
