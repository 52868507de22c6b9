package facerecognition

import (
	"context"
	"sort"
	"sync"

	"attendly.io/entities"
)

// TemplateStore is the persistence boundary of the registry. Backed by the
// FaceTemplates collection in production and by an in-memory store in tests.
type TemplateStore interface {
	FindByEmployee(ctx context.Context, employeeID string) (*entities.FaceTemplate, error)
	FindAll(ctx context.Context) ([]entities.FaceTemplate, error)
	Save(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error)
	Delete(ctx context.Context, employeeID string) error
}

// Registry is the read-through cache of registered face templates. A stale
// descriptor is a wrong-person match waiting to happen, so writes invalidate
// synchronously and the next read repopulates from the store; there is no
// TTL-based staleness window.
type Registry struct {
	store TemplateStore

	mu         sync.RWMutex
	byEmployee map[string]entities.FaceTemplate
	order      []string
	loaded     bool
}

func NewRegistry(store TemplateStore) *Registry {
	return &Registry{
		store:      store,
		byEmployee: map[string]entities.FaceTemplate{},
	}
}

func (r *Registry) ensureLoaded(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}
	return r.reloadLocked(ctx)
}

// reloadLocked repopulates the cache from the store. Caller holds the write
// lock.
func (r *Registry) reloadLocked(ctx context.Context) error {
	templates, err := r.store.FindAll(ctx)
	if err != nil {
		return err
	}

	// registration order decides 1:N tie-breaks: first registered wins
	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].RegisteredAt.Equal(templates[j].RegisteredAt) {
			return templates[i].ID < templates[j].ID
		}
		return templates[i].RegisteredAt.Before(templates[j].RegisteredAt)
	})

	r.byEmployee = make(map[string]entities.FaceTemplate, len(templates))
	r.order = make([]string, 0, len(templates))
	for _, template := range templates {
		r.byEmployee[template.EmployeeID] = template
		r.order = append(r.order, template.EmployeeID)
	}
	r.loaded = true
	return nil
}

func (r *Registry) Get(ctx context.Context, employeeID string) (*entities.FaceTemplate, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	template, ok := r.byEmployee[employeeID]
	if !ok {
		return nil, nil
	}
	return &template, nil
}

// All returns every registered template in registration order.
func (r *Registry) All(ctx context.Context) ([]entities.FaceTemplate, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	templates := make([]entities.FaceTemplate, 0, len(r.order))
	for _, employeeID := range r.order {
		templates = append(templates, r.byEmployee[employeeID])
	}
	return templates, nil
}

// Put persists the template and synchronously refreshes the cache so no
// subsequent read can observe the old descriptor.
func (r *Registry) Put(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error) {
	saved, err := r.store.Save(ctx, template)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.reloadLocked(ctx); err != nil {
		// cache is now marked unloaded; next read retries the load
		r.loaded = false
		return nil, err
	}
	return saved, nil
}

func (r *Registry) Remove(ctx context.Context, employeeID string) error {
	if err := r.store.Delete(ctx, employeeID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.reloadLocked(ctx); err != nil {
		r.loaded = false
		return err
	}
	return nil
}

// Invalidate drops the cached templates. Called when a registration event
// happens outside this process (e.g. an admin import job).
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.byEmployee = map[string]entities.FaceTemplate{}
	r.order = nil
}
