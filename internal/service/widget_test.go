package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JonnyWalker81/apitemplate/internal/models"
	"github.com/JonnyWalker81/apitemplate/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestService() WidgetService {
	return NewWidgetService(repository.NewMemoryWidgetRepository())
}

func TestCreateWidget(t *testing.T) {
	svc := newTestService()

	widget, err := svc.CreateWidget(context.Background(), &models.CreateWidgetRequest{
		Name:        "Sprocket",
		Description: ptr("A small gear"),
		Price:       4.25,
	})
	require.NoError(t, err)

	assert.NoError(t, ValidateUUIDv7(widget.ID))
	assert.Equal(t, "Sprocket", widget.Name)
	assert.Equal(t, "A small gear", *widget.Description)
	assert.WithinDuration(t, time.Now(), widget.CreatedAt, time.Second)
	assert.Equal(t, widget.CreatedAt, widget.UpdatedAt)
}

func TestCreateWidgetValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateWidget(context.Background(), &models.CreateWidgetRequest{
		Name:  "",
		Price: -1,
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, []string{"The name field is required."}, verr.Fields["name"])
	assert.Equal(t, []string{"The field price must be greater than or equal to 0."}, verr.Fields["price"])
	assert.Equal(t, "validation failed: name, price", verr.Error())
}

func TestUpdateWidget(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateWidget(ctx, &models.CreateWidgetRequest{Name: "Sprocket", Description: ptr("gear"), Price: 1})
	require.NoError(t, err)

	t.Run("absent fields are unchanged", func(t *testing.T) {
		updated, err := svc.UpdateWidget(ctx, created.ID, &models.UpdateWidgetRequest{Price: ptr(2.5)})
		require.NoError(t, err)
		assert.Equal(t, "Sprocket", updated.Name)
		assert.Equal(t, "gear", *updated.Description)
		assert.Equal(t, 2.5, updated.Price)
	})

	t.Run("null clears description", func(t *testing.T) {
		updated, err := svc.UpdateWidget(ctx, created.ID, &models.UpdateWidgetRequest{
			Description: models.NullableString{Set: true},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("long description rejected", func(t *testing.T) {
		_, err := svc.UpdateWidget(ctx, created.ID, &models.UpdateWidgetRequest{
			Name:        ptr(""),
			Description: models.NullableString{Set: true, Valid: true, Value: strings.Repeat("x", 501)},
		})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Contains(t, verr.Fields, "description")
		assert.Contains(t, verr.Fields, "name")
	})
}

func TestWidgetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	_, err = svc.GetWidget(ctx, id.String())
	assert.ErrorIs(t, err, ErrWidgetNotFound)

	_, err = svc.UpdateWidget(ctx, id.String(), &models.UpdateWidgetRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrWidgetNotFound)

	assert.ErrorIs(t, svc.DeleteWidget(ctx, id.String()), ErrWidgetNotFound)
}

func TestWidgetInvalidID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.GetWidget(ctx, "not-a-uuid")
	assert.True(t, IsInvalidID(err))

	err = svc.DeleteWidget(ctx, uuid.NewString())
	assert.True(t, IsInvalidID(err), "UUIDv4 identifiers are rejected")

	assert.False(t, IsInvalidID(ErrWidgetNotFound))
}

func TestListWidgetsClampsPageSize(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateWidget(ctx, &models.CreateWidgetRequest{Name: "w", Price: 1})
		require.NoError(t, err)
	}

	widgets, err := svc.ListWidgets(ctx, 1000, -5)
	require.NoError(t, err)
	assert.Len(t, widgets, 3)

	widgets, err = svc.ListWidgets(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, widgets, 2)
}
