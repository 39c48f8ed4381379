package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/JonnyWalker81/apitemplate/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// WidgetRepository defines the interface for widget data access
type WidgetRepository interface {
	Create(ctx context.Context, widget *models.Widget) (*models.Widget, error)
	GetByID(ctx context.Context, id string) (*models.Widget, error)
	List(ctx context.Context, limit, offset int) ([]models.Widget, error)
	Update(ctx context.Context, id string, widget *models.Widget) (*models.Widget, error)
	Delete(ctx context.Context, id string) error
}

type memoryWidgetRepository struct {
	mu      sync.RWMutex
	widgets map[string]models.Widget
}

// NewMemoryWidgetRepository creates an in-process widget store.
func NewMemoryWidgetRepository() WidgetRepository {
	return &memoryWidgetRepository{widgets: make(map[string]models.Widget)}
}

func (r *memoryWidgetRepository) Create(ctx context.Context, widget *models.Widget) (*models.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[widget.ID]; exists {
		return nil, errors.New("widget already exists")
	}
	r.widgets[widget.ID] = clone(*widget)

	created := clone(*widget)
	return &created, nil
}

func (r *memoryWidgetRepository) GetByID(ctx context.Context, id string) (*models.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	widget, ok := r.widgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := clone(widget)
	return &found, nil
}

// List returns widgets ordered by ID. UUIDv7 IDs sort by creation time.
func (r *memoryWidgetRepository) List(ctx context.Context, limit, offset int) ([]models.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	widgets := make([]models.Widget, 0, len(r.widgets))
	for _, w := range r.widgets {
		widgets = append(widgets, clone(w))
	}
	r.mu.RUnlock()

	sort.Slice(widgets, func(i, j int) bool { return widgets[i].ID < widgets[j].ID })

	if offset >= len(widgets) {
		return []models.Widget{}, nil
	}
	widgets = widgets[offset:]
	if limit > 0 && limit < len(widgets) {
		widgets = widgets[:limit]
	}
	return widgets, nil
}

func (r *memoryWidgetRepository) Update(ctx context.Context, id string, widget *models.Widget) (*models.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.widgets[id]; !ok {
		return nil, ErrNotFound
	}
	stored := clone(*widget)
	stored.ID = id
	r.widgets[id] = stored

	updated := clone(stored)
	return &updated, nil
}

func (r *memoryWidgetRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.widgets[id]; !ok {
		return ErrNotFound
	}
	delete(r.widgets, id)
	return nil
}

// clone detaches the pointer fields so callers cannot mutate stored records.
func clone(w models.Widget) models.Widget {
	if w.Description != nil {
		d := *w.Description
		w.Description = &d
	}
	return w
}
