package facerecognition

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"attendly.io/entities"
)

// memoryTemplateStore is the in-memory TemplateStore used across the
// package's tests.
type memoryTemplateStore struct {
	mu        sync.Mutex
	templates map[string]entities.FaceTemplate
	seq       int
	failAll   bool
}

func newMemoryTemplateStore() *memoryTemplateStore {
	return &memoryTemplateStore{templates: map[string]entities.FaceTemplate{}}
}

func (s *memoryTemplateStore) FindByEmployee(_ context.Context, employeeID string) (*entities.FaceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	template, ok := s.templates[employeeID]
	if !ok {
		return nil, nil
	}
	return &template, nil
}

func (s *memoryTemplateStore) FindAll(context.Context) ([]entities.FaceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errors.New("store down")
	}
	all := make([]entities.FaceTemplate, 0, len(s.templates))
	for _, template := range s.templates {
		all = append(all, template)
	}
	return all, nil
}

func (s *memoryTemplateStore) Save(_ context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if template.ID == "" {
		s.seq++
		template.ID = fmt.Sprintf("tpl_%03d", s.seq)
	}
	if template.RegisteredAt.IsZero() {
		template.RegisteredAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Hour)
	}
	s.templates[template.EmployeeID] = template
	return &template, nil
}

func (s *memoryTemplateStore) Delete(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, employeeID)
	return nil
}

func seedTemplate(t *testing.T, store *memoryTemplateStore, employeeID string, descriptor []float64, registeredAt time.Time) {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	store.seq++
	store.templates[employeeID] = entities.FaceTemplate{
		ID:           fmt.Sprintf("tpl_%03d", store.seq),
		EmployeeID:   employeeID,
		Descriptor:   descriptor,
		RegisteredAt: registeredAt,
	}
}

func TestRegistryAllReturnsRegistrationOrder(t *testing.T) {
	store := newMemoryTemplateStore()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedTemplate(t, store, "emp_c", []float64{1}, base.Add(2*time.Hour))
	seedTemplate(t, store, "emp_a", []float64{1}, base)
	seedTemplate(t, store, "emp_b", []float64{1}, base.Add(time.Hour))

	registry := NewRegistry(store)
	templates, err := registry.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}

	want := []string{"emp_a", "emp_b", "emp_c"}
	if len(templates) != len(want) {
		t.Fatalf("got %d templates, want %d", len(templates), len(want))
	}
	for i, employeeID := range want {
		if templates[i].EmployeeID != employeeID {
			t.Errorf("position %d: got %s, want %s", i, templates[i].EmployeeID, employeeID)
		}
	}
}

func TestRegistryTieBreaksOnID(t *testing.T) {
	store := newMemoryTemplateStore()
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedTemplate(t, store, "emp_z", []float64{1}, at)
	seedTemplate(t, store, "emp_y", []float64{1}, at)

	registry := NewRegistry(store)
	templates, err := registry.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if templates[0].ID > templates[1].ID {
		t.Errorf("equal timestamps should order by ID: %s before %s", templates[0].ID, templates[1].ID)
	}
}

func TestRegistryPutVisibleImmediately(t *testing.T) {
	store := newMemoryTemplateStore()
	registry := NewRegistry(store)
	ctx := context.Background()

	if _, err := registry.All(ctx); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	saved, err := registry.Put(ctx, entities.FaceTemplate{EmployeeID: "emp_1", Descriptor: []float64{0.5}})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := registry.Get(ctx, "emp_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != saved.ID {
		t.Fatal("expected the saved template to be readable immediately")
	}
}

func TestRegistryRemove(t *testing.T) {
	store := newMemoryTemplateStore()
	seedTemplate(t, store, "emp_1", []float64{1}, time.Now())
	registry := NewRegistry(store)
	ctx := context.Background()

	if err := registry.Remove(ctx, "emp_1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, err := registry.Get(ctx, "emp_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expected removed template to be gone from the cache")
	}
}

func TestRegistryInvalidateForcesReload(t *testing.T) {
	store := newMemoryTemplateStore()
	registry := NewRegistry(store)
	ctx := context.Background()

	if _, err := registry.All(ctx); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	// write behind the registry's back, as an import job would
	seedTemplate(t, store, "emp_1", []float64{1}, time.Now())
	got, err := registry.Get(ctx, "emp_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatal("cache should not see out-of-band writes before invalidation")
	}

	registry.Invalidate()
	got, err = registry.Get(ctx, "emp_1")
	if err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if got == nil {
		t.Error("expected invalidation to force a reload from the store")
	}
}

func TestRegistryLoadFailureRetries(t *testing.T) {
	store := newMemoryTemplateStore()
	store.failAll = true
	registry := NewRegistry(store)
	ctx := context.Background()

	if _, err := registry.All(ctx); err == nil {
		t.Fatal("expected load error while the store is down")
	}

	store.mu.Lock()
	store.failAll = false
	store.mu.Unlock()
	if _, err := registry.All(ctx); err != nil {
		t.Fatalf("expected the next read to retry the load, got %v", err)
	}
}
