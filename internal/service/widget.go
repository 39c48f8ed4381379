package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/JonnyWalker81/apitemplate/internal/models"
	"github.com/JonnyWalker81/apitemplate/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrWidgetNotFound is returned when the requested widget does not exist.
var ErrWidgetNotFound = errors.New("widget not found")

const (
	defaultPageSize      = 50
	maxPageSize          = 100
	maxDescriptionLength = 500
)

// WidgetService defines the interface for widget business logic
type WidgetService interface {
	ListWidgets(ctx context.Context, limit, offset int) ([]models.Widget, error)
	GetWidget(ctx context.Context, id string) (*models.Widget, error)
	CreateWidget(ctx context.Context, req *models.CreateWidgetRequest) (*models.Widget, error)
	UpdateWidget(ctx context.Context, id string, req *models.UpdateWidgetRequest) (*models.Widget, error)
	DeleteWidget(ctx context.Context, id string) error
}

type widgetService struct {
	repo     repository.WidgetRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewWidgetService creates a new widget service
func NewWidgetService(repo repository.WidgetRepository) WidgetService {
	return &widgetService{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
	}
}

func (s *widgetService) ListWidgets(ctx context.Context, limit, offset int) ([]models.Widget, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *widgetService) GetWidget(ctx context.Context, id string) (*models.Widget, error) {
	if err := ValidateUUIDv7(id); err != nil {
		return nil, err
	}

	widget, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return widget, nil
}

func (s *widgetService) CreateWidget(ctx context.Context, req *models.CreateWidgetRequest) (*models.Widget, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, toValidationError(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate widget id: %w", err)
	}

	now := ExtractUUIDv7Timestamp(id.String())
	widget := &models.Widget{
		ID:          id.String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, widget)
	if err != nil {
		return nil, fmt.Errorf("failed to create widget: %w", err)
	}
	return created, nil
}

func (s *widgetService) UpdateWidget(ctx context.Context, id string, req *models.UpdateWidgetRequest) (*models.Widget, error) {
	if err := ValidateUUIDv7(id); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		converted := toValidationError(err)
		if !errors.As(converted, &verr) {
			return nil, converted
		}
	}
	if req.Description.Valid && utf8.RuneCountInString(req.Description.Value) > maxDescriptionLength {
		verr.add("description", fieldMessage("description", "max", fmt.Sprint(maxDescriptionLength)))
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	widget, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Name != nil {
		widget.Name = *req.Name
	}
	if req.Description.Set {
		widget.Description = req.Description.ToPtr()
	}
	if req.Price != nil {
		widget.Price = *req.Price
	}
	widget.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, id, widget)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *widgetService) DeleteWidget(ctx context.Context, id string) error {
	if err := ValidateUUIDv7(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWidgetNotFound
	}
	return err
}
